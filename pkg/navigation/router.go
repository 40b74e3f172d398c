package navigation

import "sync"

const (
	PathHome  = "/"
	PathLogin = "/login"
)

// Router is an in-process client.Navigator. OnNavigate, when set, is called after
// every change with the previous and new path, outside the lock.
type Router struct {
	mu         sync.Mutex
	path       string
	onNavigate func(from, to string)
}

func NewRouter(initial string) *Router {
	if initial == "" {
		initial = PathHome
	}
	return &Router{path: initial}
}

func (r *Router) OnNavigate(fn func(from, to string)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onNavigate = fn
}

func (r *Router) CurrentPath() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.path
}

func (r *Router) Replace(path string) {
	r.replace(path, false)
}

// ReplaceUnless navigates to path unless it is already current, as one
// atomic step. It reports whether navigation happened.
func (r *Router) ReplaceUnless(path string) bool {
	return r.replace(path, true)
}

func (r *Router) replace(path string, skipSame bool) bool {
	r.mu.Lock()
	from := r.path
	if skipSame && from == path {
		r.mu.Unlock()
		return false
	}
	r.path = path
	hook := r.onNavigate
	r.mu.Unlock()

	if hook != nil {
		hook(from, path)
	}
	return true
}
