package rpnsolve

import (
	"strconv"
	"sync"
)

// Slot is one position of a Shape.
type Slot int8

const (
	// SlotNum is a position to be filled by an operand.
	SlotNum Slot = iota
	// SlotOp is a position to be filled by an operator.
	SlotOp
)

// Shape is the postfix skeleton of a binary expression tree. Reading left to
// right, each SlotNum pushes an operand and each SlotOp combines the top two,
// so a valid Shape never combines fewer than two operands and leaves exactly
// one.
type Shape []Slot

// Shapes returns every distinct Shape with n operands, of which there are
// Catalan(n-1). Panics if n < 1.
func Shapes(n int) []Shape {
	if n < 1 {
		panic("rpnsolve: shapes of " + strconv.Itoa(n) + " operands")
	}
	g := shapegen{
		cur: make(Shape, 0, 2*n-1),
		r:   make([]Shape, 0, Catalan(n-1)),
	}
	g.gen(n, n-1, 0)
	return g.r
}

type shapegen struct {
	cur Shape
	r   []Shape
}

// gen places the remaining nums operands and ops operators after cur, which
// leaves stack operands available to combine.
func (g *shapegen) gen(nums, ops, stack int) {
	if nums == 0 && ops == 0 {
		g.r = append(g.r, append(Shape(nil), g.cur...))
		return
	}
	if nums > 0 {
		g.cur = append(g.cur, SlotNum)
		g.gen(nums-1, ops, stack+1)
		g.cur = g.cur[:len(g.cur)-1]
	}
	if ops > 0 && stack >= 2 {
		g.cur = append(g.cur, SlotOp)
		g.gen(nums, ops-1, stack-1)
		g.cur = g.cur[:len(g.cur)-1]
	}
}

// Counts returns the number of operand and operator slots in s.
func (s Shape) Counts() (nums, ops int) {
	for _, k := range s {
		if k == SlotNum {
			nums++
		} else {
			ops++
		}
	}
	return nums, ops
}

// Valid reports whether s is a complete postfix skeleton, i.e. every operator
// finds two operands to combine and exactly one operand remains at the end.
func (s Shape) Valid() bool {
	stack := 0
	for _, k := range s {
		switch k {
		case SlotNum:
			stack++
		case SlotOp:
			if stack < 2 {
				return false
			}
			stack--
		default:
			return false
		}
	}
	return stack == 1
}

func (s Shape) String() string {
	b := make([]byte, len(s))
	for i, k := range s {
		if k == SlotNum {
			b[i] = 'n'
		} else {
			b[i] = 'o'
		}
	}
	return string(b)
}

// Catalan returns the n-th Catalan number. Results overflow int for n > 35
// on 64-bit platforms.
func Catalan(n int) int {
	if n < 0 {
		return 0
	}
	// C(k+1) = C(k) * 2(2k+1) / (k+2), exact at each step.
	c := 1
	for k := 0; k < n; k++ {
		c = c * 2 * (2*k + 1) / (k + 2)
	}
	return c
}

// ShapeCache memoizes Shapes for each operand count. The shapes it returns
// are shared and must not be modified. It is safe for concurrent use.
type ShapeCache struct {
	mu sync.Mutex
	m  map[int][]Shape
}

// Get returns the shapes for n operands, generating them the first time.
func (c *ShapeCache) Get(n int) []Shape {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.m[n]; ok {
		return s
	}
	if c.m == nil {
		c.m = make(map[int][]Shape)
	}
	s := Shapes(n)
	c.m[n] = s
	return s
}
