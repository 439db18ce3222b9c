// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package prompt

import (
	"context"
	"strings"

	"github.com/AlecAivazis/survey/v2"
)

// SurveyPrompter implements Prompter using the survey library.
type SurveyPrompter struct {
	interactive bool
	opts        []survey.AskOpt
}

// NewSurveyPrompter creates a new survey-based prompter. Extra options are
// passed to every survey.AskOne call.
func NewSurveyPrompter(interactive bool, opts ...survey.AskOpt) *SurveyPrompter {
	return &SurveyPrompter{interactive: interactive, opts: opts}
}

// PromptString collects a string input using survey.Input. Surrounding
// whitespace is trimmed and empty answers are rejected.
func (sp *SurveyPrompter) PromptString(ctx context.Context, message, def string) (string, error) {
	if !sp.interactive {
		return "", ErrNonInteractive
	}

	var result string
	prompt := &survey.Input{Message: message, Default: def}

	opts := append([]survey.AskOpt{survey.WithValidator(func(ans interface{}) error {
		if str, ok := ans.(string); ok {
			return ValidateString(str)
		}
		return nil
	})}, sp.opts...)

	if err := survey.AskOne(prompt, &result, opts...); err != nil {
		return "", err
	}
	return strings.TrimSpace(result), nil
}

// Confirm asks a yes/no question using survey.Confirm.
func (sp *SurveyPrompter) Confirm(ctx context.Context, message string, def bool) (bool, error) {
	if !sp.interactive {
		return false, ErrNonInteractive
	}

	var result bool
	err := survey.AskOne(&survey.Confirm{Message: message, Default: def}, &result, sp.opts...)
	return result, err
}

// IsInteractive returns true if prompts can be displayed
func (sp *SurveyPrompter) IsInteractive() bool {
	return sp.interactive
}
