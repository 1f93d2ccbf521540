package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/config"
	chesserrors "github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/game"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

// stubSupplier answers every position with the same code.
type stubSupplier struct {
	reply string
	err   error
}

func (s stubSupplier) BestMove(context.Context, game.Position) (string, error) {
	return s.reply, s.err
}

func newTestServer(t *testing.T, supplier game.MoveSupplier) (*Server, *config.Config) {
	t.Helper()
	cfg := config.NewConfig()
	cfg.SetLogFile(io.Discard)
	return New(cfg, supplier), cfg
}

// do sends a request and decodes a JSON response into out when out is set.
func do(t *testing.T, s *Server, method, path string, body interface{}, out interface{}) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		testutil.AssertNoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.App().Test(req, -1)
	testutil.AssertNoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		data, err := io.ReadAll(resp.Body)
		testutil.AssertNoError(t, err)
		if err := json.Unmarshal(data, out); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, path, data, err)
		}
	}
	return resp.StatusCode
}

func createGame(t *testing.T, s *Server, req *CreateRequest) *GameState {
	t.Helper()
	var st GameState
	var body interface{}
	if req != nil {
		body = req
	}
	code := do(t, s, http.MethodPost, "/api/games", body, &st)
	testutil.AssertEqual(t, code, fiber.StatusCreated)
	return &st
}

func sans(st *GameState) []string {
	out := []string{}
	for _, m := range st.Moves {
		out = append(out, m.SAN)
	}
	return out
}

func TestCreateGame(t *testing.T) {
	s, _ := newTestServer(t, nil)

	st := createGame(t, s, nil)
	testutil.AssertTrue(t, st.ID != "")
	testutil.AssertEqual(t, st.FEN, chess.InitialFEN)
	testutil.AssertEqual(t, st.ToMove, chess.White)
	testutil.AssertEqual(t, st.Status, chess.Normal)
	testutil.AssertEqual(t, st.Phase, "move")
	testutil.AssertEqual(t, st.Result, "*")
	testutil.AssertEqual(t, len(st.Moves), 0)
	testutil.AssertEqual(t, s.Games().Len(), 1)

	custom := createGame(t, s, &CreateRequest{FEN: "8/1P6/8/8/8/8/k7/4K3"})
	testutil.AssertEqual(t, custom.FEN, "8/1P6/8/8/8/8/k7/4K3")
	testutil.AssertEqual(t, custom.ToMove, chess.White)
	testutil.AssertTrue(t, custom.ID != st.ID)

	black := createGame(t, s, &CreateRequest{ToMove: "b"})
	testutil.AssertEqual(t, black.ToMove, chess.Black)
}

func TestCreateGame_Errors(t *testing.T) {
	tests := []struct {
		name string
		req  CreateRequest
		want int
	}{
		{"malformed placement", CreateRequest{FEN: "8/8/8"}, fiber.StatusUnprocessableEntity},
		{"unknown side", CreateRequest{ToMove: "red"}, fiber.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(t, nil)
			var body map[string]string
			testutil.AssertEqual(t, do(t, s, http.MethodPost, "/api/games", tt.req, &body), tt.want)
			testutil.AssertTrue(t, body["error"] != "")
		})
	}
}

func TestCreateGame_SessionCap(t *testing.T) {
	s, cfg := newTestServer(t, nil)
	cfg.Server.MaxSessions = 1

	createGame(t, s, nil)
	testutil.AssertEqual(t, do(t, s, http.MethodPost, "/api/games", nil, nil), fiber.StatusTooManyRequests)
}

func TestGetGame(t *testing.T) {
	s, _ := newTestServer(t, nil)
	st := createGame(t, s, nil)

	var got GameState
	testutil.AssertEqual(t, do(t, s, http.MethodGet, "/api/games/"+st.ID, nil, &got), fiber.StatusOK)
	testutil.AssertEqual(t, got.ID, st.ID)

	testutil.AssertEqual(t, do(t, s, http.MethodGet, "/api/games/missing", nil, nil), fiber.StatusNotFound)
}

func TestDeleteGame(t *testing.T) {
	s, _ := newTestServer(t, nil)
	st := createGame(t, s, nil)

	testutil.AssertEqual(t, do(t, s, http.MethodDelete, "/api/games/"+st.ID, nil, nil), fiber.StatusNoContent)
	testutil.AssertEqual(t, do(t, s, http.MethodGet, "/api/games/"+st.ID, nil, nil), fiber.StatusNotFound)
	testutil.AssertEqual(t, do(t, s, http.MethodDelete, "/api/games/"+st.ID, nil, nil), fiber.StatusNotFound)
}

func TestPlayMove(t *testing.T) {
	s, _ := newTestServer(t, nil)
	st := createGame(t, s, nil)
	path := "/api/games/" + st.ID + "/moves"

	var got GameState
	for _, req := range []MoveRequest{
		{SAN: "e4"},
		{UCI: "e7e5"},
		{From: "g1", To: "f3"},
	} {
		testutil.AssertEqual(t, do(t, s, http.MethodPost, path, req, &got), fiber.StatusOK)
	}

	testutil.AssertEqual(t, sans(&got), []string{"e4", "e5", "Nf3"})
	testutil.AssertEqual(t, got.Ply, 3)
	testutil.AssertEqual(t, got.ToMove, chess.Black)
	testutil.AssertEqual(t, got.Moves[2].MoveNumber, 2)
	testutil.AssertEqual(t, got.Moves[2].UCI, "g1f3")
}

func TestPlayMove_Errors(t *testing.T) {
	tests := []struct {
		name string
		req  interface{}
		want int
	}{
		{"illegal notation", MoveRequest{SAN: "e5"}, fiber.StatusUnprocessableEntity},
		{"illegal code", MoveRequest{UCI: "e2e5"}, fiber.StatusUnprocessableEntity},
		{"empty origin", MoveRequest{From: "e4", To: "e5"}, fiber.StatusUnprocessableEntity},
		{"bad square", MoveRequest{From: "z9", To: "e4"}, fiber.StatusUnprocessableEntity},
		{"nothing to play", MoveRequest{}, fiber.StatusBadRequest},
		{"not json", "e4", fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(t, nil)
			st := createGame(t, s, nil)
			testutil.AssertEqual(t, do(t, s, http.MethodPost, "/api/games/"+st.ID+"/moves", tt.req, nil), tt.want)

			var after GameState
			do(t, s, http.MethodGet, "/api/games/"+st.ID, nil, &after)
			testutil.AssertEqual(t, after.Ply, 0)
		})
	}
}

func TestPromotion(t *testing.T) {
	s, _ := newTestServer(t, nil)
	st := createGame(t, s, &CreateRequest{FEN: "8/1P6/8/8/8/8/k7/4K3", ToMove: "white"})
	base := "/api/games/" + st.ID

	var got GameState
	testutil.AssertEqual(t, do(t, s, http.MethodPost, base+"/moves", MoveRequest{From: "b7", To: "b8"}, &got), fiber.StatusOK)
	testutil.AssertEqual(t, got.Phase, "promotion")
	testutil.AssertEqual(t, *got.PendingPromotion, PendingPromotion{From: "b7", To: "b8", SAN: "b8"})
	testutil.AssertEqual(t, got.Ply, 0)

	// Nothing else may be played until the piece is chosen.
	testutil.AssertEqual(t, do(t, s, http.MethodPost, base+"/moves", MoveRequest{SAN: "Kd2"}, nil), fiber.StatusConflict)
	testutil.AssertEqual(t, do(t, s, http.MethodPost, base+"/promotion", PromotionRequest{Piece: "king"}, nil), fiber.StatusUnprocessableEntity)

	testutil.AssertEqual(t, do(t, s, http.MethodPost, base+"/promotion", PromotionRequest{Piece: "knight"}, &got), fiber.StatusOK)
	testutil.AssertEqual(t, sans(&got), []string{"b8=N"})
	testutil.AssertEqual(t, got.Moves[0].Promotion, "knight")
	testutil.AssertNil(t, got.PendingPromotion)

	testutil.AssertEqual(t, do(t, s, http.MethodPost, base+"/promotion", PromotionRequest{Piece: "q"}, nil), fiber.StatusConflict)
}

func TestPromotion_WithTargetAndCancel(t *testing.T) {
	s, _ := newTestServer(t, nil)
	st := createGame(t, s, &CreateRequest{FEN: "8/1P6/8/8/8/8/k7/4K3"})
	base := "/api/games/" + st.ID

	var got GameState
	do(t, s, http.MethodPost, base+"/moves", MoveRequest{UCI: "b7b8"}, &got)
	testutil.AssertNotNil(t, got.PendingPromotion)

	testutil.AssertEqual(t, do(t, s, http.MethodDelete, base+"/promotion", nil, &got), fiber.StatusOK)
	testutil.AssertNil(t, got.PendingPromotion)
	testutil.AssertEqual(t, got.Phase, "move")

	testutil.AssertEqual(t, do(t, s, http.MethodPost, base+"/moves", MoveRequest{From: "b7", To: "b8", Promotion: "R"}, &got), fiber.StatusOK)
	testutil.AssertEqual(t, sans(&got), []string{"b8=R"})
}

func TestLegalMoves(t *testing.T) {
	s, _ := newTestServer(t, nil)
	st := createGame(t, s, nil)
	base := "/api/games/" + st.ID + "/moves"

	var moves []LegalMove
	testutil.AssertEqual(t, do(t, s, http.MethodGet, base+"?square=e2", nil, &moves), fiber.StatusOK)
	sort.Slice(moves, func(i, j int) bool { return moves[i].UCI < moves[j].UCI })
	testutil.AssertEqual(t, moves, []LegalMove{
		{From: "e2", To: "e3", SAN: "e3", UCI: "e2e3"},
		{From: "e2", To: "e4", SAN: "e4", UCI: "e2e4"},
	})

	testutil.AssertEqual(t, do(t, s, http.MethodGet, base, nil, &moves), fiber.StatusOK)
	testutil.AssertEqual(t, len(moves), 20)

	testutil.AssertEqual(t, do(t, s, http.MethodGet, base+"?square=e4", nil, &moves), fiber.StatusOK)
	testutil.AssertEqual(t, len(moves), 0)

	testutil.AssertEqual(t, do(t, s, http.MethodGet, base+"?square=z9", nil, nil), fiber.StatusUnprocessableEntity)
}

func TestAttacks(t *testing.T) {
	s, _ := newTestServer(t, nil)
	st := createGame(t, s, nil)

	var squares []string
	testutil.AssertEqual(t, do(t, s, http.MethodGet, "/api/games/"+st.ID+"/attacks?square=g1", nil, &squares), fiber.StatusOK)
	sort.Strings(squares)
	testutil.AssertEqual(t, squares, []string{"e2", "f3", "h3"})

	testutil.AssertEqual(t, do(t, s, http.MethodGet, "/api/games/"+st.ID+"/attacks?square=e4", nil, &squares), fiber.StatusOK)
	testutil.AssertEqual(t, len(squares), 0)

	squares = nil
	testutil.AssertEqual(t, do(t, s, http.MethodGet, "/api/games/"+st.ID+"/attacks?side=black", nil, &squares), fiber.StatusOK)
	for _, want := range []string{"a6", "f6", "h6", "d7"} {
		testutil.AssertTrue(t, containsSquare(squares, want), "black should control %s", want)
	}
	testutil.AssertFalse(t, containsSquare(squares, "e4"), "black should not control e4")

	testutil.AssertEqual(t, do(t, s, http.MethodGet, "/api/games/"+st.ID+"/attacks?side=purple", nil, nil), fiber.StatusUnprocessableEntity)
}

func containsSquare(squares []string, want string) bool {
	for _, sq := range squares {
		if sq == want {
			return true
		}
	}
	return false
}

func TestImport(t *testing.T) {
	s, _ := newTestServer(t, nil)
	st := createGame(t, s, nil)

	var got GameState
	req := ImportRequest{Movetext: "1. e4 e5 2. Nf9 Nf3 {book} 2... Nc6", Source: "upload"}
	testutil.AssertEqual(t, do(t, s, http.MethodPost, "/api/games/"+st.ID+"/import", req, &got), fiber.StatusOK)
	testutil.AssertEqual(t, sans(&got), []string{"e4", "e5", "Nf3", "Nc6"})
	testutil.AssertEqual(t, len(got.Diagnostics), 1)
	testutil.AssertEqual(t, got.Diagnostics[0].Token, "Nf9")
	testutil.AssertEqual(t, got.Diagnostics[0].Ply, 2)
}

func TestRewindAndReset(t *testing.T) {
	s, _ := newTestServer(t, nil)
	st := createGame(t, s, nil)
	base := "/api/games/" + st.ID

	var got GameState
	do(t, s, http.MethodPost, base+"/import", ImportRequest{Movetext: "1. e4 e5 2. Nf3"}, &got)
	testutil.AssertEqual(t, got.Ply, 3)

	one := 1
	testutil.AssertEqual(t, do(t, s, http.MethodPost, base+"/rewind", RewindRequest{Ply: &one}, &got), fiber.StatusOK)
	testutil.AssertEqual(t, got.Ply, 1)
	testutil.AssertEqual(t, got.Length, 3)
	testutil.AssertEqual(t, got.ToMove, chess.Black)
	testutil.AssertEqual(t, sans(&got), []string{"e4"})

	nine := 9
	testutil.AssertEqual(t, do(t, s, http.MethodPost, base+"/rewind", RewindRequest{Ply: &nine}, nil), fiber.StatusBadRequest)
	testutil.AssertEqual(t, do(t, s, http.MethodPost, base+"/rewind", RewindRequest{}, nil), fiber.StatusBadRequest)

	testutil.AssertEqual(t, do(t, s, http.MethodPost, base+"/reset", nil, &got), fiber.StatusOK)
	testutil.AssertEqual(t, got.Ply, 0)
	testutil.AssertEqual(t, got.Length, 0)
	testutil.AssertEqual(t, got.FEN, chess.InitialFEN)
}

func TestGameOver(t *testing.T) {
	s, _ := newTestServer(t, nil)
	st := createGame(t, s, nil)

	var got GameState
	do(t, s, http.MethodPost, "/api/games/"+st.ID+"/import", ImportRequest{Movetext: testutil.FoolsMate}, &got)
	testutil.AssertEqual(t, got.Status, chess.Checkmate)
	testutil.AssertEqual(t, got.Phase, "over")
	testutil.AssertEqual(t, got.Result, "0-1")
	testutil.AssertEqual(t, got.Checkers, []string{"h4"})

	var moves []LegalMove
	do(t, s, http.MethodGet, "/api/games/"+st.ID+"/moves", nil, &moves)
	testutil.AssertEqual(t, len(moves), 0)
}

func TestText(t *testing.T) {
	s, _ := newTestServer(t, nil)
	st := createGame(t, s, nil)
	do(t, s, http.MethodPost, "/api/games/"+st.ID+"/import", ImportRequest{Movetext: testutil.ScholarsMate}, nil)

	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/api/games/"+st.ID+"/text", nil), -1)
	testutil.AssertNoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, resp.StatusCode, fiber.StatusOK)
	testutil.AssertContains(t, string(body), "["+st.ID+"]")
	testutil.AssertContains(t, string(body), "4. Qxf7# 1-0")
	testutil.AssertContains(t, string(body), "status: checkmate")
}

func TestEngineMove(t *testing.T) {
	t.Run("no engine", func(t *testing.T) {
		s, _ := newTestServer(t, nil)
		st := createGame(t, s, nil)
		testutil.AssertEqual(t, do(t, s, http.MethodPost, "/api/games/"+st.ID+"/engine", nil, nil), fiber.StatusServiceUnavailable)
	})

	t.Run("engine reply", func(t *testing.T) {
		s, _ := newTestServer(t, stubSupplier{reply: "e2e4"})
		st := createGame(t, s, nil)

		var got EngineResponse
		testutil.AssertEqual(t, do(t, s, http.MethodPost, "/api/games/"+st.ID+"/engine", nil, &got), fiber.StatusOK)
		testutil.AssertEqual(t, got.SAN, "e4")
		testutil.AssertEqual(t, got.UCI, "e2e4")
		testutil.AssertEqual(t, got.State.Ply, 1)
	})

	t.Run("engine failure", func(t *testing.T) {
		s, _ := newTestServer(t, stubSupplier{err: errors.New("engine exited")})
		st := createGame(t, s, nil)
		testutil.AssertEqual(t, do(t, s, http.MethodPost, "/api/games/"+st.ID+"/engine", nil, nil), fiber.StatusBadGateway)
	})

	t.Run("illegal engine reply", func(t *testing.T) {
		s, _ := newTestServer(t, stubSupplier{reply: "e2e5"})
		st := createGame(t, s, nil)
		testutil.AssertEqual(t, do(t, s, http.MethodPost, "/api/games/"+st.ID+"/engine", nil, nil), fiber.StatusBadGateway)
	})
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unknown game", ErrGameNotFound, fiber.StatusNotFound},
		{"cap reached", ErrTooManyGames, fiber.StatusTooManyRequests},
		{"fiber error", fiber.NewError(fiber.StatusTeapot, "tea"), fiber.StatusTeapot},
		{"wrapped illegal move", chesserrors.Wrap(chesserrors.ErrMoveNotFound, "e5"), fiber.StatusUnprocessableEntity},
		{"pending promotion", chesserrors.ErrPromotionPending, fiber.StatusConflict},
		{"engine with pending promotion", errors.Join(chesserrors.ErrEngineMove, chesserrors.ErrPromotionPending), fiber.StatusConflict},
		{"engine", chesserrors.ErrEngineMove, fiber.StatusBadGateway},
		{"rewind", chesserrors.ErrPlyOutOfRange, fiber.StatusBadRequest},
		{"other", errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, statusFor(tt.err), tt.want)
		})
	}
}
