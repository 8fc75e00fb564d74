package selfplay

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"baduk/internal/domain/match"
	"baduk/internal/httpresponse"
	matchuc "baduk/internal/usecase/match"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type SelfPlayHandler struct {
	log     *zap.SugaredLogger
	matchUC *matchuc.MatchUseCase
}

func NewSelfPlayHandler(log *zap.SugaredLogger, matchUC *matchuc.MatchUseCase) *SelfPlayHandler {
	return &SelfPlayHandler{
		log:     log,
		matchUC: matchUC,
	}
}

// HandleSelfPlay plays black against white and streams a MoveFrame per move
// followed by one FinalFrame. The game stops when the client disconnects.
func (h *SelfPlayHandler) HandleSelfPlay(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := match.SelfPlayRequest{
		Black: query.Get("black"),
		White: query.Get("white"),
	}
	if req.Black == "" || req.White == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: "black and white bots are required"})
		return
	}
	if size := query.Get("board_size"); size != "" {
		n, err := strconv.Atoi(size)
		if err != nil {
			httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
				httpresponse.ErrorResponse{ErrorDescription: "board_size must be a number"})
			return
		}
		req.BoardSize = n
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Errorf("upgrade error: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go h.watchClose(conn, cancel)

	game, err := h.matchUC.SelfPlay(ctx, req, func(frame match.MoveFrame) error {
		return writeJSON(conn, frame)
	})
	if err != nil {
		h.log.Warnw("self-play aborted", "black", req.Black, "white", req.White, "error", err)
		msg := websocket.FormatCloseMessage(websocket.CloseInternalServerErr, err.Error())
		if httpresponse.StatusFromError(err) != http.StatusInternalServerError {
			msg = websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error())
		}
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		return
	}

	final := match.FinalFrame{
		GameID: game.GameID,
		Winner: game.Winner,
		Margin: game.Margin,
		Result: game.Result,
	}
	if err := writeJSON(conn, final); err != nil {
		h.log.Warnf("failed to send final frame of %s: %v", game.GameID, err)
		return
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game over"), time.Now().Add(writeWait))
}

// watchClose drains the read side so close frames are processed, and cancels
// the game once the client goes away.
func (h *SelfPlayHandler) watchClose(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writeJSON(conn *websocket.Conn, v any) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(v)
}
