package scripting

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/cory-johannsen/hog/internal/game/hog"
)

// RegisterModules registers the hog Lua table into L.
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: hog global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	mod := L.NewTable()
	L.SetFuncs(mod, map[string]lua.LGFunction{
		"free_bacon": luaFreeBacon,
		"is_swap":    luaIsSwap,
		"is_prime":   luaIsPrime,
		"next_prime": luaNextPrime,
		"hog_wild":   luaHogWild,
	})
	L.SetField(mod, "goal", lua.LNumber(m.goal()))
	L.SetField(mod, "max_rolls", lua.LNumber(hog.MaxRolls))
	L.SetGlobal("hog", mod)
}

// Helpers run in Go outside the opcode budget, so their arguments are bounded.
const (
	// maxScoreArg is far above any reachable score.
	maxScoreArg = 1 << 16
	maxPrimeArg = 1 << 20
)

// checkScore reads an integer score argument at position n in [0, maxScoreArg].
func checkScore(L *lua.LState, n int) int {
	v := L.CheckInt(n)
	if v < 0 || v > maxScoreArg {
		L.ArgError(n, fmt.Sprintf("score must be in [0, %d]", maxScoreArg))
	}
	return v
}

func luaFreeBacon(L *lua.LState) int {
	L.Push(lua.LNumber(hog.FreeBacon(checkScore(L, 1))))
	return 1
}

func luaIsSwap(L *lua.LState) int {
	L.Push(lua.LBool(hog.IsSwap(checkScore(L, 1), checkScore(L, 2))))
	return 1
}

// checkPrimeArg reads an integer argument at position n in [0, maxPrimeArg].
func checkPrimeArg(L *lua.LState, n int) int {
	v := L.CheckInt(n)
	if v < 0 || v > maxPrimeArg {
		L.ArgError(n, fmt.Sprintf("value must be in [0, %d]", maxPrimeArg))
	}
	return v
}

func luaIsPrime(L *lua.LState) int {
	L.Push(lua.LBool(hog.IsPrime(checkPrimeArg(L, 1))))
	return 1
}

func luaNextPrime(L *lua.LState) int {
	L.Push(lua.LNumber(hog.NextPrime(checkPrimeArg(L, 1))))
	return 1
}

func luaHogWild(L *lua.LState) int {
	L.Push(lua.LBool(hog.IsHogWild(checkScore(L, 1), checkScore(L, 2))))
	return 1
}
