package notation

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

// moveNumberPattern matches "12." and "12..." at the start of a word.
var moveNumberPattern = regexp.MustCompile(`(?:^|\s)(\d+)\s*(\.+)`)

// Token is one move of movetext with the move number it was written under
// and the colour expected to play it.
type Token struct {
	Text       string
	MoveNumber int
	Colour     chess.Colour
}

// Tokenize strips movetext and splits it into move tokens. Move numbers are
// consumed; "N..." marks the following move as Black's. Text before the
// first move number is counted from move 1 with White.
func Tokenize(text string) []Token {
	text = Strip(text)

	var tokens []Token
	number, colour := 1, chess.White
	emit := func(segment string) {
		for _, field := range strings.Fields(segment) {
			tokens = append(tokens, Token{Text: field, MoveNumber: number, Colour: colour})
			if colour == chess.Black {
				number++
			}
			colour = colour.Opposite()
		}
	}

	prev := 0
	for _, loc := range moveNumberPattern.FindAllStringSubmatchIndex(text, -1) {
		emit(text[prev:loc[0]])
		if n, err := strconv.Atoi(text[loc[2]:loc[3]]); err == nil {
			number = n
		}
		colour = chess.White
		if strings.HasPrefix(text[loc[4]:loc[5]], "...") {
			colour = chess.Black
		}
		prev = loc[1]
	}
	emit(text[prev:])

	return tokens
}
