// Package harness runs conformance scenarios against the analysis engine.
//
// # Scenario Format
//
// Scenarios are YAML files with the following structure:
//
//	name: likes
//	description: "Untemplated literals are reported"
//	document: |
//	  templates:
//	  *a person* likes *an object*.
//
//	  knowledge base:
//	  fred likes apples.
//	  bob dances.
//	  alice li
//	expect:
//	  diagnostics:
//	    - line: 5
//	      code: W101
//	    - line: 6
//	      code: W101
//	  completions:
//	    - line: 6
//	      column: 8
//	      labels: ["alice likes *an object*"]
//	  templates:
//	    - literal: fred likes apples
//	      template: "*a person* likes *an object*"
//	  suggestions:
//	    - bob dances
//	    - alice li
//
// A scenario names its document inline with document or in a separate
// file, resolved relative to the scenario. Lines and columns are 0-based.
//
// # Expectations
//
//   - diagnostics: the complete, ordered list of diagnostics. An empty list
//     asserts a clean document; omitting the key skips the check.
//   - completions: the labels offered at a cursor, in rank order.
//   - templates: the template a literal resolves to; an empty template
//     asserts that nothing matches.
//   - suggestions: the templates synthesised for untemplated literals.
//
// Every run also produces a deterministic text snapshot suitable for
// golden file comparison with AssertGolden.
package harness
