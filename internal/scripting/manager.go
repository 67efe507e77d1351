package scripting

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/hog/internal/game/hog"
)

// StrategyHook is the Lua global every strategy script must define.
const StrategyHook = "strategy"

// Manager owns one sandboxed LState per loaded strategy script.
//
// Manager is safe for concurrent use. Each strategy's LState is
// single-threaded and guarded by that strategy's own lock.
type Manager struct {
	mu            sync.RWMutex
	strategies    map[string]*LuaStrategy
	instLimit     int
	fallbackRolls int
	logger        *zap.Logger

	// Goal is exposed to scripts as hog.goal. Set before LoadDir; 0 = hog.GoalScore.
	Goal int
}

// NewManager creates a Manager.
//
// Precondition: logger must be non-nil; fallbackRolls in [0, hog.MaxRolls].
// Postcondition: Returns a non-nil Manager with no strategies loaded.
func NewManager(logger *zap.Logger, instLimit, fallbackRolls int) *Manager {
	if logger == nil {
		panic("scripting: NewManager precondition violated: logger must not be nil")
	}
	if fallbackRolls < 0 || fallbackRolls > hog.MaxRolls {
		panic(fmt.Sprintf("scripting: NewManager precondition violated: fallback rolls must be in [0, %d], got %d", hog.MaxRolls, fallbackRolls))
	}
	return &Manager{
		strategies:    make(map[string]*LuaStrategy),
		instLimit:     instLimit,
		fallbackRolls: fallbackRolls,
		logger:        logger,
	}
}

func (m *Manager) goal() int {
	if m.Goal <= 0 {
		return hog.GoalScore
	}
	return m.Goal
}

// LoadDir loads every *.lua file in dir in lexicographic order. Each file gets
// its own sandboxed VM and becomes a strategy named after the file's basename.
// A strategy loaded again under the same name replaces the previous one.
//
// Precondition: dir must be a readable directory.
// Postcondition: on error no strategy from dir is registered.
func (m *Manager) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q: %w", dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	loaded := make([]*LuaStrategy, 0, len(luaFiles))
	for _, path := range luaFiles {
		s, err := m.loadFile(path)
		if err != nil {
			for _, l := range loaded {
				l.close()
			}
			return err
		}
		loaded = append(loaded, s)
	}

	m.mu.Lock()
	for _, s := range loaded {
		if old, ok := m.strategies[s.name]; ok {
			old.close()
		}
		m.strategies[s.name] = s
	}
	m.mu.Unlock()

	for _, s := range loaded {
		m.logger.Info("scripting: strategy loaded", zap.String("strategy", s.name))
	}
	return nil
}

func (m *Manager) loadFile(path string) (*LuaStrategy, error) {
	name := strings.TrimSuffix(filepath.Base(path), ".lua")
	L := NewSandboxedState(m.instLimit)
	m.RegisterModules(L)

	if err := L.DoFile(path); err != nil {
		L.Close()
		return nil, fmt.Errorf("scripting: loading %q: %w", path, err)
	}
	if L.GetGlobal(StrategyHook).Type() != lua.LTFunction {
		L.Close()
		return nil, fmt.Errorf("scripting: %q does not define a global %s(score, opponent_score) function", path, StrategyHook)
	}
	return &LuaStrategy{
		name:      name,
		L:         L,
		instLimit: m.instLimit,
		fallback:  m.fallbackRolls,
		logger:    m.logger,
	}, nil
}

// Strategy returns the loaded strategy called name.
func (m *Manager) Strategy(name string) (*LuaStrategy, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.strategies[name]
	return s, ok
}

// Names returns the loaded strategy names in sorted order.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.strategies))
	for name := range m.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close releases every loaded VM. Strategies must not be used afterwards.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for name, s := range m.strategies {
		s.close()
		delete(m.strategies, name)
	}
}

// LuaStrategy is a hog.Strategy backed by a Lua strategy(score, opponent_score)
// function. Any failure inside the script yields the fallback roll count.
type LuaStrategy struct {
	mu        sync.Mutex
	name      string
	L         *lua.LState
	instLimit int
	fallback  int
	logger    *zap.Logger
}

// Name returns the strategy name.
func (s *LuaStrategy) Name() string { return s.name }

// NumRolls calls the script under a fresh opcode budget.
//
// Postcondition: return value is in [0, hog.MaxRolls].
func (s *LuaStrategy) NumRolls(score, opponentScore int) int {
	n, err := s.call(score, opponentScore)
	if err != nil {
		s.logger.Warn("scripting: strategy fell back",
			zap.String("strategy", s.name),
			zap.Int("score", score),
			zap.Int("opponent_score", opponentScore),
			zap.Int("fallback", s.fallback),
			zap.Error(err),
		)
		return s.fallback
	}
	return n
}

var errClosed = errors.New("strategy is closed")

func (s *LuaStrategy) call(score, opponentScore int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.L == nil {
		return 0, errClosed
	}

	release := ResetBudget(s.L, s.instLimit)
	err := s.L.CallByParam(lua.P{
		Fn:      s.L.GetGlobal(StrategyHook),
		NRet:    1,
		Protect: true,
	}, lua.LNumber(score), lua.LNumber(opponentScore))
	release()
	if err != nil {
		return 0, fmt.Errorf("runtime error: %w", err)
	}

	ret := s.L.Get(-1)
	s.L.Pop(1)
	num, ok := ret.(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("returned %s, want an integer", ret.Type())
	}
	f := float64(num)
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("returned non-integer %v", f)
	}
	if f < 0 || f > hog.MaxRolls {
		return 0, fmt.Errorf("returned %v, want a roll count in [0, %d]", f, hog.MaxRolls)
	}
	return int(f), nil
}

func (s *LuaStrategy) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.L != nil {
		s.L.Close()
		s.L = nil
	}
}
