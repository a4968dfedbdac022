// Package document segments Logical English text into sections, clauses and
// literals.
//
// A document is a sequence of header-delimited sections:
//
//	the type hierarchy is:
//	    person
//	        student
//	the templates are:
//	    *a person* really likes *an object*.
//	the knowledge base tasty includes:
//	    fred bloggs really likes apples.
//
// A line is a header iff it contains a colon. Colons inside literal text are
// therefore read as headers; Classify is the single place that decides this.
//
// Every function is pure over its input and reports absence as an empty
// result, never as an error.
package document
