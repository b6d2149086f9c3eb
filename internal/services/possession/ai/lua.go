package ai

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/Shopify/go-lua"
	apperrors "github.com/louisbranch/possession/internal/platform/errors"
	"github.com/louisbranch/possession/internal/services/possession/domain"
)

const (
	luaDecisionFunc  = "next_decision"
	luaPendingGlobal = "__possession_pending"
)

// LuaSource asks a Lua script for each decision.
//
// The script must define a global next_decision(tick). Returning a boolean
// yields a precomputed decision; returning a function yields a lazy decision
// that calls it when the control flag is read. Only the most recent lazy
// decision stays bound: once a later tick returns a function, older lazy
// decisions fail when evaluated. Failed calls advance nothing.
type LuaSource struct {
	mu          sync.Mutex
	state       *lua.State
	tick        int64
	pendingTick int64
}

// NewLuaSource runs script and checks that it defines next_decision.
func NewLuaSource(script string) (*LuaSource, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)
	if err := lua.DoString(state, script); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDecisionScriptFailed, fmt.Sprintf("load decision script: %v", err), err)
	}
	return newLuaSource(state)
}

// NewLuaSourceFromFile loads a decision script from path.
func NewLuaSourceFromFile(path string) (*LuaSource, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("script path is required")
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, apperrors.WithMetadata(apperrors.CodeNotFound, "decision script not found: "+path, map[string]string{"Path": path})
	}
	state := lua.NewState()
	lua.OpenLibraries(state)
	if err := lua.DoFile(state, path); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDecisionScriptFailed, fmt.Sprintf("load decision script %s: %v", path, err), err)
	}
	return newLuaSource(state)
}

func newLuaSource(state *lua.State) (*LuaSource, error) {
	state.Global(luaDecisionFunc)
	defined := state.IsFunction(-1)
	state.Pop(1)
	if !defined {
		return nil, apperrors.New(apperrors.CodeDecisionScriptFailed, "decision script must define function "+luaDecisionFunc)
	}
	return &LuaSource{state: state}, nil
}

// NextDecision implements domain.DecisionSource.
func (s *LuaSource) NextDecision(ctx context.Context) (domain.Decision, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tick := s.tick + 1
	top := s.state.Top()
	defer s.state.SetTop(top)

	s.state.Global(luaDecisionFunc)
	s.state.PushInteger(int(tick))
	if err := s.state.ProtectedCall(1, 1, 0); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDecisionScriptFailed, fmt.Sprintf("%s(%d): %v", luaDecisionFunc, tick, err), err)
	}

	switch s.state.TypeOf(-1) {
	case lua.TypeBoolean:
		s.tick = tick
		return domain.StaticDecision{PlayerControl: s.state.ToBoolean(-1)}, nil
	case lua.TypeFunction:
		s.state.SetGlobal(luaPendingGlobal)
		s.tick = tick
		s.pendingTick = tick
		return s.lazyDecision(tick), nil
	default:
		return nil, apperrors.New(apperrors.CodeDecisionScriptFailed,
			fmt.Sprintf("%s(%d) returned %s, want boolean or function", luaDecisionFunc, tick, lua.TypeNameOf(s.state, -1)))
	}
}

func (s *LuaSource) lazyDecision(tick int64) domain.Decision {
	return domain.DecisionFunc(func() (bool, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if tick != s.pendingTick {
			return false, apperrors.New(apperrors.CodeDecisionScriptFailed,
				fmt.Sprintf("decision from tick %d was replaced by tick %d", tick, s.pendingTick))
		}

		top := s.state.Top()
		defer s.state.SetTop(top)

		s.state.Global(luaPendingGlobal)
		if err := s.state.ProtectedCall(0, 1, 0); err != nil {
			return false, apperrors.Wrap(apperrors.CodeDecisionScriptFailed, fmt.Sprintf("evaluate decision %d: %v", tick, err), err)
		}
		if s.state.TypeOf(-1) != lua.TypeBoolean {
			return false, apperrors.New(apperrors.CodeDecisionScriptFailed,
				fmt.Sprintf("decision %d evaluated to %s, want boolean", tick, lua.TypeNameOf(s.state, -1)))
		}
		return s.state.ToBoolean(-1), nil
	})
}
