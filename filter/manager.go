package filter

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	u "github.com/araddon/gou"
	"github.com/dchest/siphash"
	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/lytics/nlfilter/event"
	"github.com/lytics/nlfilter/vm"
)

// siphash keys for the compiled-program cache. Arbitrary but fixed, so
// identical expression text always maps to the same cache slot.
const (
	hashKey0 = 0x6e6c66696c746572 // "nlfilter"
	hashKey1 = 0x70726f6772616d73 // "programs"
)

// Manager owns a set of named filters evaluated sequentially against
// events. Identical expression text registered under different names
// shares one compiled program, keyed by a siphash of the text. All
// evaluations run on one context behind the manager's mutex, so regex
// compilation is amortized across every registered filter.
type Manager struct {
	mu       sync.Mutex
	filters  map[string]*managedFilter
	programs map[uint64]*Filter
	ctx      *vm.Context

	watcher *fsnotify.Watcher
	stop    chan struct{}
}

type managedFilter struct {
	filter *Filter
	hits   int64
	misses int64
}

// FilterStats is a point-in-time snapshot of one named filter.
type FilterStats struct {
	Expression string
	Hits       int64
	Misses     int64
}

func NewManager() *Manager {
	return &Manager{
		filters:  make(map[string]*managedFilter),
		programs: make(map[uint64]*Filter),
		ctx:      vm.NewContext(),
	}
}

// Register compiles and activates a named filter, replacing any existing
// filter of that name. A parse or compile error leaves the previous
// registration (if any) untouched.
func (m *Manager) Register(name, text string) error {
	if name == "" {
		return fmt.Errorf("filter name required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	key := siphash.Hash(hashKey0, hashKey1, []byte(text))
	f, ok := m.programs[key]
	if !ok {
		var err error
		f, err = Compile(text)
		if err != nil {
			return err
		}
		m.programs[key] = f
	}
	m.filters[name] = &managedFilter{filter: f}
	return nil
}

// Remove deactivates a named filter, reporting whether it existed.
func (m *Manager) Remove(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.filters[name]
	delete(m.filters, name)
	return ok
}

// Names returns the registered filter names, sorted.
func (m *Manager) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.filters))
	for name := range m.filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Matches evaluates one named filter against an event.
func (m *Manager) Matches(name string, ev *event.NetworkEvent) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mf, ok := m.filters[name]
	if !ok {
		return false, fmt.Errorf("unknown filter %q", name)
	}
	return m.evaluate(mf, ev), nil
}

// MatchAll evaluates every registered filter against the event and
// returns the sorted names that matched.
func (m *Manager) MatchAll(ev *event.NetworkEvent) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matched []string
	for name, mf := range m.filters {
		if m.evaluate(mf, ev) {
			matched = append(matched, name)
		}
	}
	sort.Strings(matched)
	return matched
}

// evaluate runs one filter on the shared context; the caller holds m.mu.
func (m *Manager) evaluate(mf *managedFilter, ev *event.NetworkEvent) bool {
	matched, _ := vm.EvaluateWithProfiling(mf.filter.Program, ev, m.ctx)
	if matched {
		mf.hits++
	} else {
		mf.misses++
	}
	return matched
}

// Stats returns a snapshot of hit/miss counts per filter name.
func (m *Manager) Stats() map[string]FilterStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]FilterStats, len(m.filters))
	for name, mf := range m.filters {
		out[name] = FilterStats{
			Expression: mf.filter.Expr.Text,
			Hits:       mf.hits,
			Misses:     mf.misses,
		}
	}
	return out
}

// Profile returns the shared context's accumulated timing counters.
func (m *Manager) Profile() vm.ProfileStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ctx.Profile
}

// Config is a filter-set file:
//
//	version: "1"
//	filters:
//	  - name: eth-up
//	    expr: link_ifname =~ "eth.*" AND link_operstate == "up"
type Config struct {
	Version string       `yaml:"version"`
	Filters []FilterRule `yaml:"filters"`
}

// FilterRule is one named filter in a Config.
type FilterRule struct {
	Name     string `yaml:"name"`
	Expr     string `yaml:"expr"`
	Disabled bool   `yaml:"disabled,omitempty"`
}

// LoadConfig registers every enabled rule in a YAML filter-set file.
// Rules that fail to parse or compile are skipped and reported; valid
// rules still activate, so one bad rule does not take down the set.
func (m *Manager) LoadConfig(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read filter config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse filter config %s: %w", path, err)
	}

	var bad []string
	for _, rule := range cfg.Filters {
		if rule.Disabled {
			m.Remove(rule.Name)
			continue
		}
		if err := m.Register(rule.Name, rule.Expr); err != nil {
			u.Warnf("filter %q not activated: %v", rule.Name, err)
			bad = append(bad, fmt.Sprintf("%s: %v", rule.Name, err))
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("%d of %d filters not activated: %s",
			len(bad), len(cfg.Filters), strings.Join(bad, "; "))
	}
	return nil
}

// WatchConfig reloads the filter set whenever the file changes. Call
// Close to stop watching.
func (m *Manager) WatchConfig(path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return err
	}

	m.mu.Lock()
	if m.watcher != nil {
		m.mu.Unlock()
		watcher.Close()
		return fmt.Errorf("config watch already active")
	}
	m.watcher = watcher
	m.stop = make(chan struct{})
	stop := m.stop
	m.mu.Unlock()

	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
					u.Infof("reloading filter config %s", path)
					if err := m.LoadConfig(path); err != nil {
						u.Errorf("filter config reload: %v", err)
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				u.Warnf("filter config watch: %v", err)
			case <-stop:
				return
			}
		}
	}()
	return nil
}

// Close stops the config watcher, if any.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.watcher != nil {
		close(m.stop)
		m.watcher.Close()
		m.watcher = nil
	}
}
