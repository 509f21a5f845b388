// Package procrun runs one supervised child process on a
// pseudo-terminal. Each runtime owns the pty master, an emulated
// terminal fed by a dedicated reader goroutine, and the child handle.
// Everything the reader observes is delivered asynchronously as typed
// events on a channel owned by the supervisor, so the runtime never
// calls back into shared state.
package procrun
