// Package memory provides the in-memory expiring key-value store.
//
// One Store is created per process and shared by every connection. All
// operations serialize on a single mutex; nothing is held across I/O.
//
// Expiry is lazy: an entry past its deadline stays in the map until a Get
// for that key finds it, removes it and reports Expired. There is no
// background sweep.
package memory
