// Package exec runs presentation snippets as operating system processes.
//
// Two execution modes are provided:
//
//   - Asynchronous: the snippet runs in the background with stdout and
//     stderr combined into one stream. A goroutine per execution appends
//     the raw output to a mutex-protected State that the render loop
//     drains once per tick through the returned Handle.
//   - Synchronous: the snippet runs on the calling goroutine with the
//     real terminal attached, for snippets that need interactive
//     terminal control.
//
// Commands are resolved per language from a built-in runner table that
// configuration can override or extend. Started processes are never
// cancelled mid-presentation; the executor tracks live handles so the
// presenter can reap anything still running at shutdown.
package exec
