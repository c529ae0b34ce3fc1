package exchange_test

import (
	"strings"
	"testing"

	"github.com/midbel/xmltok/exchange"
)

func TestExpressionMatches(t *testing.T) {
	expr := exchange.NewExpression("/a/b")
	ex := exchange.New(strings.NewReader("<a><b>1</b></a>"))

	ok, err := expr.Matches(ex)
	if err != nil {
		t.Fatalf("matches: %s", err)
	}
	if !ok {
		t.Fatal("expected a match")
	}
}

func TestExpressionMatchesNone(t *testing.T) {
	expr := exchange.NewExpression("/a/c")
	ex := exchange.New(strings.NewReader("<a><b>1</b></a>"))

	ok, err := expr.Matches(ex)
	if err != nil {
		t.Fatalf("matches: %s", err)
	}
	if ok {
		t.Fatal("expected no match")
	}
}

func TestExpressionEvaluateReturnsOpenCursor(t *testing.T) {
	expr := exchange.NewExpression("/a/b")
	ex := exchange.New(strings.NewReader("<a><b>1</b><b>2</b></a>"))

	cur, err := expr.Evaluate(ex)
	if err != nil {
		t.Fatalf("evaluate: %s", err)
	}
	defer cur.Close()

	var got []string
	for {
		frag, ok := cur.Next()
		if !ok {
			break
		}
		got = append(got, frag)
	}
	if err := cur.Err(); err != nil {
		t.Fatalf("cursor error: %s", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 fragments, got %d: %v", len(got), got)
	}
}

func TestExpressionUnsupportedCharset(t *testing.T) {
	expr := exchange.NewExpression("/a/b")
	ex := exchange.New(strings.NewReader("<a><b>1</b></a>")).WithCharset("ISO-8859-1")

	if _, err := expr.Evaluate(ex); err == nil {
		t.Fatal("expected unsupported charset error")
	}
}
