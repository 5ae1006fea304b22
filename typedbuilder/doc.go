// Package typedbuilder is the runtime support package imported by builders
// generated with typed-builder.
//
// A generated builder is a generic struct with one state type parameter per
// record field. Each state is either Unset[T] or Set[T]; setters move exactly
// one parameter from its current state to Set[T], so the builder's type always
// records which fields were supplied.
//
// Go cannot attach a method to one particular instantiation of a generic type,
// so the checks are split in three:
//
//   - the generated Build<Record> function only accepts builders whose required
//     states are Set, and the compiler rejects anything else;
//   - the buildercheck analyzer reports repeated setters, missing required
//     fields and unmet mutator requirements at the call site;
//   - the fluent Build method returns a *MissingFieldError,
//     *RepeatedFieldError or *MutatorError instead of an incomplete record.
package typedbuilder
