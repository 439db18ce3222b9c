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

package completion

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/text/cases"

	"github.com/globus/globus-cli/internal/complete"
)

// ChoiceFlag declares the closed set of values flag name accepts.
// Matching is case-sensitive unless caseSensitive is false.
func ChoiceFlag(cmd *cobra.Command, name string, choices []string, caseSensitive bool) error {
	flag, flags := lookupFlag(cmd, name)
	if flag == nil {
		return fmt.Errorf("flag --%s not defined on %q", name, cmd.Name())
	}

	if err := flags.SetAnnotation(name, complete.AnnotationChoices, append([]string(nil), choices...)); err != nil {
		return err
	}
	if !caseSensitive {
		if err := flags.SetAnnotation(name, complete.AnnotationCaseInsensitive, []string{"true"}); err != nil {
			return err
		}
	}

	return cmd.RegisterFlagCompletionFunc(name, choiceCompleter(choices, caseSensitive))
}

// NegationFlag records that flag negation switches target off, so both
// spellings complete as one option.
func NegationFlag(cmd *cobra.Command, negation, target string) error {
	if f, _ := lookupFlag(cmd, target); f == nil {
		return fmt.Errorf("flag --%s not defined on %q", target, cmd.Name())
	}
	_, flags := lookupFlag(cmd, negation)
	if flags == nil {
		return fmt.Errorf("flag --%s not defined on %q", negation, cmd.Name())
	}
	return flags.SetAnnotation(negation, complete.AnnotationNegates, []string{target})
}

// ValidateChoice checks value against the flag's declared choices and
// returns the canonical spelling.
func ValidateChoice(cmd *cobra.Command, name, value string) (string, error) {
	flag, _ := lookupFlag(cmd, name)
	if flag == nil {
		return value, nil
	}
	choices := flag.Annotations[complete.AnnotationChoices]
	if len(choices) == 0 {
		return value, nil
	}

	_, insensitive := flag.Annotations[complete.AnnotationCaseInsensitive]
	for _, c := range choices {
		if c == value || (insensitive && strings.EqualFold(c, value)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("invalid value %q for --%s (choose from %s)", value, name, strings.Join(choices, ", "))
}

// choiceCompleter backs cobra's own __complete with the same matching the
// --shell-complete engine uses.
func choiceCompleter(choices []string, caseSensitive bool) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	fold := cases.Fold()
	return func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return SafeCompletionWrapper(func() ([]string, cobra.ShellCompDirective) {
			var out []string
			for _, c := range choices {
				if strings.HasPrefix(c, toComplete) ||
					(!caseSensitive && strings.HasPrefix(fold.String(c), fold.String(toComplete))) {
					out = append(out, c)
				}
			}
			return out, cobra.ShellCompDirectiveNoFileComp
		})
	}
}

// lookupFlag finds name among cmd's local and persistent flags and returns
// the flag with the set that owns it.
func lookupFlag(cmd *cobra.Command, name string) (*pflag.Flag, *pflag.FlagSet) {
	for _, fs := range []*pflag.FlagSet{cmd.LocalNonPersistentFlags(), cmd.PersistentFlags(), cmd.Flags()} {
		if f := fs.Lookup(name); f != nil {
			return f, fs
		}
	}
	return nil, nil
}

// SafeCompletionWrapper runs a completion function, turning a panic or a
// nil result into an empty completion.
func SafeCompletionWrapper(fn func() ([]string, cobra.ShellCompDirective)) (results []string, directive cobra.ShellCompDirective) {
	results = []string{}
	directive = cobra.ShellCompDirectiveNoFileComp

	defer func() {
		if r := recover(); r != nil {
			results = []string{}
			directive = cobra.ShellCompDirectiveNoFileComp
		}
	}()

	results, directive = fn()
	if results == nil {
		return []string{}, cobra.ShellCompDirectiveNoFileComp
	}
	return results, directive
}
