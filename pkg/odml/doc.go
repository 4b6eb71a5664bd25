// Package odml implements the property layer of the open metadata Markup
// Language: named properties holding ordered sequences of typed values,
// a merge engine reconciling two same-named properties under a selectable
// conflict policy, and a validation engine checking a property against a
// normative definition from a controlled terminology.
//
// The section tree that owns properties is an external collaborator and is
// only visible here through the Container interface. Document serialization
// and binary payload persistence are likewise out of scope.
package odml
