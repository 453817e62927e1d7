// service/game_manager.go
package service

import (
	"errors"
	"maps"
	"sync"

	"github.com/benbeisheim/casualchess/internal/model"
	"github.com/benbeisheim/casualchess/internal/ws"
	"go.uber.org/zap"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

// Conn is the part of a websocket connection the manager writes to.
type Conn interface {
	WriteJSON(v any) error
}

// lockedConn serializes writes; game updates arrive from request
// goroutines and from opponent timers.
type lockedConn struct {
	mu   sync.Mutex
	conn Conn
}

func (c *lockedConn) WriteJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

type managedGame struct {
	game        *model.Game
	unsubscribe func()

	mu    sync.Mutex
	conns map[string]*lockedConn
}

type GameManager struct {
	games       map[string]*managedGame
	mu          sync.RWMutex
	gameOptions []model.Option
	log         *zap.Logger
}

// NewGameManager creates an empty registry. gameOptions are applied to
// every game before the per-game options passed to CreateGame.
func NewGameManager(log *zap.Logger, gameOptions ...model.Option) *GameManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &GameManager{
		games:       make(map[string]*managedGame),
		gameOptions: gameOptions,
		log:         log,
	}
}

func (gm *GameManager) CreateGame(gameID string, opts ...model.Option) (*model.Game, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return nil, ErrGameExists
	}

	all := append([]model.Option{model.WithLogger(gm.log)}, gm.gameOptions...)
	all = append(all, opts...)
	mg := &managedGame{
		game:  model.NewGame(gameID, all...),
		conns: make(map[string]*lockedConn),
	}
	mg.unsubscribe = mg.game.Subscribe(func(v model.View) { gm.broadcast(mg, v) })
	gm.games[gameID] = mg

	gm.log.Info("game created", zap.String("gameID", gameID), zap.Int("games", len(gm.games)))
	return mg.game, nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	mg, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return mg.game, nil
}

// DeleteGame discards a game, cancelling its pending opponent move. Open
// sockets stay open but receive nothing further.
func (gm *GameManager) DeleteGame(gameID string) error {
	gm.mu.Lock()
	mg, exists := gm.games[gameID]
	if exists {
		delete(gm.games, gameID)
	}
	gm.mu.Unlock()
	if !exists {
		return ErrGameNotFound
	}

	mg.unsubscribe()
	mg.game.Close()
	gm.log.Info("game deleted", zap.String("gameID", gameID))
	return nil
}

func (gm *GameManager) GameCount() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.games)
}

// RegisterConnection attaches a socket to a game and sends it the current
// state. The returned Conn must be used for any other writes to the
// socket so they do not interleave with broadcasts.
func (gm *GameManager) RegisterConnection(gameID, connID string, conn Conn) (Conn, error) {
	gm.mu.RLock()
	mg, exists := gm.games[gameID]
	gm.mu.RUnlock()
	if !exists {
		return nil, ErrGameNotFound
	}

	lc := &lockedConn{conn: conn}
	mg.mu.Lock()
	if _, ok := mg.conns[connID]; ok {
		gm.log.Debug("replacing connection", zap.String("gameID", gameID), zap.String("connID", connID))
	}
	mg.conns[connID] = lc
	mg.mu.Unlock()

	gm.log.Debug("connection registered", zap.String("gameID", gameID), zap.String("connID", connID))
	if err := gm.send(lc, mg.game.View()); err != nil {
		gm.UnregisterConnection(gameID, connID)
		return nil, err
	}
	return lc, nil
}

func (gm *GameManager) UnregisterConnection(gameID, connID string) {
	gm.mu.RLock()
	mg, exists := gm.games[gameID]
	gm.mu.RUnlock()
	if !exists {
		return
	}

	mg.mu.Lock()
	delete(mg.conns, connID)
	mg.mu.Unlock()
	gm.log.Debug("connection unregistered", zap.String("gameID", gameID), zap.String("connID", connID))
}

func (gm *GameManager) broadcast(mg *managedGame, v model.View) {
	mg.mu.Lock()
	conns := maps.Clone(mg.conns)
	mg.mu.Unlock()

	for id, c := range conns {
		if err := gm.send(c, v); err != nil {
			gm.log.Warn("failed to push game state",
				zap.String("gameID", v.ID),
				zap.String("connID", id),
				zap.Error(err),
			)
		}
	}
}

func (gm *GameManager) send(c Conn, v model.View) error {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, v)
	if err != nil {
		return err
	}
	return c.WriteJSON(msg)
}
