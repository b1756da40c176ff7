// Package errs provides the standardized error taxonomy for the dispatch
// application. Every failure that crosses a layer boundary is expressed as one
// of these types so callers can classify it with errors.Is.
//
// The taxonomy:
//   - ObjectNotFoundError: a referenced Order/Payment/Courier does not exist
//   - ValueIsInvalidError / ValueIsRequiredError / ValueIsOutOfRangeError:
//     input rejected before it reaches a state machine
//   - InvalidTransitionError: a state machine rejected an illegal edge
//   - GatewayError: the external payment gateway failed; the upstream message
//     is preserved in the cause
//
// Each type follows the same pattern: a sentinel error variable, a struct with
// detail fields, constructors with and without a cause, Error() formatting,
// and Unwrap() returning the sentinel for errors.Is classification.
package errs
