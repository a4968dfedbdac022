// Package template models Logical English sentence templates.
//
// A template is a sequence of tokens: fixed word runs and typed slots.
//
//	*a person* really likes *an object*
//
// parses to a slot of type "person", the word run "really likes", and a slot
// of type "object". Literals are matched against templates by walking the
// literal's words and treating the template's predicate words as anchors:
// everything between two anchors is a term. The extracted terms are then
// turned back into a template and the two signatures are compared.
//
// The package also derives new templates from groups of literals that share
// a word skeleton (Generalize), scores partially typed literals for
// completion (MatchScore), and fills the slots a user has already typed
// (WithMissingTerms).
package template
