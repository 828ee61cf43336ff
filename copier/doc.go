// Package copier clones the subgraph of records reachable from a root record.
//
// # Operation
//
// Copy is the entry point. It creates a Session and runs the recursive copy
// task on the root record:
//
//  1. A record already copied in the session returns its existing clone, which
//     is what terminates cycles and keeps shared records shared.
//  2. The clone is allocated (through the store, an object factory, or as a
//     bare record.Object) and registered before any field is copied.
//  3. Attributes are skipped, overwritten, copied as-is (primitive, untyped or
//     by-reference) or cloned (record.Copyable values copy themselves, others
//     round-trip through the transform resolved for their declared type).
//  4. Relationships are linked by reference (shallow copy, or listed in
//     CopyByReference) or copied recursively. To-many members are copied in
//     parallel and keep their source order.
//  5. Other attributes, attributes, relationships and overwrites are merged in
//     that order and applied with a single SetProperties call.
//
// # Failure
//
// Any error aborts the whole copy. Every clone the store created during the
// session is unloaded before Copy returns a *CopyError wrapping the cause.
//
// # Concurrency
//
// At most one Copy per source record runs at a time; a concurrent call for the
// same record returns ErrCopyInProgress without starting. Recursive copies
// inside one Copy are unrestricted.
package copier
