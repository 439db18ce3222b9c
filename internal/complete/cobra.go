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

package complete

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flag annotations understood by FromCobra.
const (
	// AnnotationChoices lists the allowed values of a closed-choice flag.
	AnnotationChoices = "globus_completion_choices"
	// AnnotationCaseInsensitive marks a closed-choice flag whose values match without case.
	AnnotationCaseInsensitive = "globus_completion_case_insensitive"
	// AnnotationNegates names the flag this one switches off; it is offered as
	// a secondary spelling of that flag.
	AnnotationNegates = "globus_completion_negates"
)

// FromCobra converts a cobra command tree into the completion tree.
//
// It must run after every sub-command is attached and before the tree is
// executed. Commands with sub-commands become groups, the rest leaves.
func FromCobra(cmd *cobra.Command) *Node {
	// cobra adds these lazily in ExecuteC, which has not run yet
	cmd.InitDefaultHelpFlag()
	cmd.InitDefaultVersionFlag()
	if !cmd.HasParent() {
		cmd.InitDefaultHelpCmd()
	}
	opts := optionsFromFlags(cmd)

	var node *Node
	if cmd.HasSubCommands() {
		var children []*Node
		for _, sub := range cmd.Commands() {
			children = append(children, FromCobra(sub))
		}
		node = NewGroup(cmd.Name(), cmd.Short, children, opts...)
	} else {
		node = NewLeaf(cmd.Name(), cmd.Short, opts...)
	}
	node.Hidden = cmd.Hidden
	return node
}

// optionsFromFlags collects the command's own flags, then the persistent
// flags it inherits from its ancestors.
func optionsFromFlags(cmd *cobra.Command) []*Option {
	var (
		opts      []*Option
		byName    = make(map[string]*Option)
		negations []*pflag.Flag
	)

	visit := func(f *pflag.Flag) {
		if _, seen := byName[f.Name]; seen {
			return
		}
		if len(f.Annotations[AnnotationNegates]) > 0 {
			negations = append(negations, f)
			return
		}
		o := optionFromFlag(f)
		byName[f.Name] = o
		opts = append(opts, o)
	}
	cmd.LocalFlags().VisitAll(visit)
	cmd.InheritedFlags().VisitAll(visit)

	for _, f := range negations {
		if target, ok := byName[f.Annotations[AnnotationNegates][0]]; ok {
			target.Negations = append(target.Negations, "--"+f.Name)
		}
	}
	return opts
}

func optionFromFlag(f *pflag.Flag) *Option {
	o := &Option{
		Names:         []string{"--" + f.Name},
		Kind:          ValueFreeText,
		CaseSensitive: true,
		Hidden:        f.Hidden,
		Help:          f.Usage,
	}
	if f.Shorthand != "" {
		o.Names = append(o.Names, "-"+f.Shorthand)
	}

	// bool and count flags carry an implicit value
	if f.NoOptDefVal != "" {
		o.Kind = ValueFlag
	}
	if choices, ok := f.Annotations[AnnotationChoices]; ok {
		o.Kind = ValueChoice
		o.Choices = choices
		_, insensitive := f.Annotations[AnnotationCaseInsensitive]
		o.CaseSensitive = !insensitive
	}
	return o
}
