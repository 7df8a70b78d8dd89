package rpnsolve

import (
	"testing"
)

func TestLex(t *testing.T) {
	table, err := Select("+", "-", "*", "/", "%", "^", "log")
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		src    string
		tokens []lexToken
		errs   int
	}{
		// spaces
		{"", nil, 0},
		{" \t \r\n ", nil, 0},
		// numbers
		{"0", []lexToken{{text: "0", kind: tokNum, pos: 1}}, 0},
		{"9876543210", []lexToken{{text: "9876543210", kind: tokNum, pos: 1}}, 0},
		{"1 0", []lexToken{{text: "1", kind: tokNum, pos: 1}, {text: "0", kind: tokNum, pos: 3}}, 0},
		{"1.0", []lexToken{{text: "1.0", kind: tokNum, pos: 1}}, 0},
		{"-1", []lexToken{{text: "-", kind: tokOp, pos: 1}, {text: "1", kind: tokNum, pos: 2}}, 0},
		{"1e1", []lexToken{{text: "1e1", kind: tokNum, pos: 1}}, 0},
		{"1e", []lexToken{{pos: 1}}, 1},
		{"1e+1", []lexToken{{text: "1e+1", kind: tokNum, pos: 1}}, 0},
		{"1e-1", []lexToken{{text: "1e-1", kind: tokNum, pos: 1}}, 0},
		{"1.0e1", []lexToken{{text: "1.0e1", kind: tokNum, pos: 1}}, 0},
		{".", []lexToken{{pos: 1}}, 1},
		{".1", []lexToken{{text: ".1", kind: tokNum, pos: 1}}, 0},
		{"1+0", []lexToken{{text: "1", kind: tokNum, pos: 1}, {text: "+", kind: tokOp, pos: 2}, {text: "0", kind: tokNum, pos: 3}}, 0},
		{"1a", []lexToken{{pos: 1}}, 1},
		// operators
		{"*", []lexToken{{text: "*", kind: tokOp, pos: 1}}, 0},
		{"++", []lexToken{{text: "+", kind: tokOp, pos: 1}, {text: "+", kind: tokOp, pos: 2}}, 0},
		{"2 log 3", []lexToken{{text: "2", kind: tokNum, pos: 1}, {text: "log", kind: tokOp, pos: 3}, {text: "3", kind: tokNum, pos: 7}}, 0},
		{"loge", []lexToken{{pos: 1}}, 1},
		// brackets
		{"()", []lexToken{{text: "(", kind: tokOpen, pos: 1}, {text: ")", kind: tokClose, pos: 2}}, 0},
		{"[]", []lexToken{{text: "[", kind: tokOpen, pos: 1}, {text: "]", kind: tokClose, pos: 2}}, 0},
		{"{}", []lexToken{{text: "{", kind: tokOpen, pos: 1}, {text: "}", kind: tokClose, pos: 2}}, 0},
		// erroneous symbols
		{"$", []lexToken{{pos: 1}}, 1},
		{"$$", []lexToken{{pos: 1}, {pos: 2}}, 2},
		{"1 $", []lexToken{{text: "1", kind: tokNum, pos: 1}, {pos: 3}}, 1},
	}

	for _, c := range cases {
		scan := lex(c.src, table)
		for _, want := range c.tokens {
			got, err := scan.next()
			if err != nil {
				if c.errs > 0 {
					c.errs--
					if got.pos != want.pos {
						t.Errorf("scanning %q: error token at %d, want %d", c.src, got.pos, want.pos)
					}
					continue
				}
				t.Errorf("scanning %q: unexpected error %v", c.src, err)
				continue
			}
			if got != want {
				t.Errorf("scanning %q: want %v, got %v", c.src, want, got)
			}
		}
		got, err := scan.next()
		if err != nil || got.kind != tokEOF {
			t.Errorf("scanning %q: expected EOF, got %v (%v)", c.src, got, err)
		}
		if c.errs != 0 {
			t.Errorf("scanning %q: %d fewer errors than expected", c.src, c.errs)
		}
	}
}

func TestLexLongestSymbol(t *testing.T) {
	pow := Operator{Symbol: "**", Func: Pow.Func, Prec: 5}
	table, err := NewTable(Mul, pow)
	if err != nil {
		t.Fatal(err)
	}
	scan := lex("2**3*4", table)
	var texts []string
	for {
		tok, err := scan.next()
		if err != nil {
			t.Fatal(err)
		}
		if tok.kind == tokEOF {
			break
		}
		texts = append(texts, tok.text)
	}
	want := []string{"2", "**", "3", "*", "4"}
	if len(texts) != len(want) {
		t.Fatalf("want %q, got %q", want, texts)
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("token %d: want %q, got %q", i, want[i], texts[i])
		}
	}
}

func TestPushMust(t *testing.T) {
	scan := lex("1", Basic())
	tok, err := scan.next()
	if err != nil {
		t.Fatal(err)
	}
	scan.push(tok)
	func() {
		defer func() {
			if recover() == nil {
				t.Error("double push did not panic")
			}
		}()
		scan.push(tok)
	}()
	if got := scan.must(); got != tok {
		t.Errorf("must: want %v, got %v", tok, got)
	}
	func() {
		defer func() {
			if recover() == nil {
				t.Error("must with nothing pushed did not panic")
			}
		}()
		scan.must()
	}()
}
