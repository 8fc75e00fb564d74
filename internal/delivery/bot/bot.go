package bot

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"baduk/internal/domain/match"
	"baduk/internal/httpresponse"
	matchuc "baduk/internal/usecase/match"
	"baduk/internal/utils"
)

type BotHandler struct {
	log     *zap.SugaredLogger
	matchUC *matchuc.MatchUseCase
}

func NewBotHandler(log *zap.SugaredLogger, matchUC *matchuc.MatchUseCase) *BotHandler {
	return &BotHandler{
		log:     log,
		matchUC: matchUC,
	}
}

// Routes mounts the bot endpoints on r.
func (h *BotHandler) Routes(r chi.Router) {
	r.Get("/bots", h.HandleBots)
	r.Post("/select-move/{bot}", h.HandleSelectMove)
	r.Post("/score", h.HandleScore)
	r.Get("/games/{id}", h.HandleGetGame)
	r.Get("/games/{id}/moves", h.HandleLiveMoves)
}

func (h *BotHandler) HandleBots(w http.ResponseWriter, r *http.Request) {
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, match.BotsResponse{Bots: h.matchUC.Bots()})
}

func (h *BotHandler) HandleSelectMove(w http.ResponseWriter, r *http.Request) {
	botName := chi.URLParam(r, "bot")

	var req match.SelectMoveRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		h.log.Warnw("bad select-move request", "bot", botName, "error", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	resp, err := h.matchUC.SelectMove(r.Context(), botName, req)
	if err != nil {
		h.log.Infow("select-move rejected", "bot", botName, "error", err)
		httpresponse.WriteError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}

func (h *BotHandler) HandleScore(w http.ResponseWriter, r *http.Request) {
	var req match.SelectMoveRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	resp, err := h.matchUC.Score(req)
	if err != nil {
		httpresponse.WriteError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}

func (h *BotHandler) HandleGetGame(w http.ResponseWriter, r *http.Request) {
	game, err := h.matchUC.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logUnexpected(err)
		httpresponse.WriteError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, game)
}

func (h *BotHandler) HandleLiveMoves(w http.ResponseWriter, r *http.Request) {
	moves, err := h.matchUC.LiveMoves(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logUnexpected(err)
		httpresponse.WriteError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, moves)
}

func (h *BotHandler) logUnexpected(err error) {
	if httpresponse.StatusFromError(err) == http.StatusInternalServerError {
		h.log.Error(err)
	}
}
