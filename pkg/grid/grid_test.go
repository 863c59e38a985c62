package grid

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlotTables(t *testing.T) {
	for i, s := range Slots {
		require.Equal(t, Slot(i), s)
		require.Equal(t, s, SlotAt(s.Row(), s.Col()), "row-major index must round trip")
	}

	// Every line has 3 distinct, valid slots, and every slot is on at least 2 lines
	onLines := make(map[Slot]int)
	for _, line := range Lines {
		require.NotEqual(t, line[0], line[1])
		require.NotEqual(t, line[1], line[2])
		for _, s := range line {
			require.True(t, s.Valid())
			onLines[s]++
		}
	}
	require.Len(t, onLines, Size)
	require.Equal(t, 4, onLines[4], "center lies on 4 lines")
	require.Equal(t, 3, onLines[0], "corner lies on 3 lines")
	require.Equal(t, 2, onLines[1], "edge lies on 2 lines")

	require.Equal(t, [3]Slot{0, 1, 2}, Lines[0], "rows come first")
	require.Equal(t, [3]Slot{0, 3, 6}, Lines[3], "then columns")
	require.Equal(t, [3]Slot{0, 4, 8}, Lines[6], "then main diagonal")
	require.Equal(t, [3]Slot{2, 4, 6}, Lines[7], "anti diagonal last")

	require.Panics(t, func() { SlotAt(3, 0) })
}

func TestForcedSlot(t *testing.T) {
	var zero Forced
	require.True(t, zero.IsFree(), "zero value must mean a free choice")
	require.Equal(t, Free(), zero)

	f := At(4)
	s, ok := f.Slot()
	require.True(t, ok)
	require.Equal(t, Slot(4), s)
	require.False(t, f.IsFree())
	require.Equal(t, "4", f.String())
	require.Equal(t, "-", Free().String())

	require.Panics(t, func() { At(9) })

	for i := 0; i <= FreeSentinel; i++ {
		forced, err := ForcedFromIndex(i)
		require.NoError(t, err)
		require.Equal(t, i, forced.Index())
	}
	_, err := ForcedFromIndex(10)
	require.Error(t, err)
	_, err = ForcedFromIndex(-1)
	require.Error(t, err)
}

func TestGridValueSemantics(t *testing.T) {
	var g Grid[Mark]
	g2 := g.With(4, X)

	require.Equal(t, Empty, g.Get(4), "With must not modify the receiver")
	require.Equal(t, X, g2.Get(4))

	var super Grid[Grid[Mark]]
	sub := super.Get(0)
	sub.Set(0, O)
	require.Equal(t, Empty, super.Get(0).Get(0), "nested grids are copied on Get")

	super.Set(0, sub)
	copied := super
	copied.Set(0, Grid[Mark]{})
	require.Equal(t, O, super.Get(0).Get(0), "assignment copies nested cells")
}

func TestGridCells(t *testing.T) {
	cells := [Size]Mark{X, O, Empty, Empty, X, Empty, O, Empty, X}
	g := FromCells(cells)
	require.Equal(t, cells, g.Cells())
	require.Equal(t, X, g.Get(SlotAt(2, 2)))
	require.Equal(t, 3, g.Count(func(m Mark) bool { return m == X }))
	require.Equal(t, 4, g.Count(func(m Mark) bool { return m == Empty }))
}

func TestGridJSON(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		var super Grid[Grid[Mark]]
		super.Set(0, FromCells([Size]Mark{X, O, Empty, Empty, X, Empty, O, Empty, X}))
		super.Set(8, Grid[Mark]{}.With(2, O))

		data, err := json.Marshal(super)
		require.NoError(t, err)

		var decoded Grid[Grid[Mark]]
		require.NoError(t, json.Unmarshal(data, &decoded))
		require.Equal(t, super, decoded)
	})

	t.Run("shape", func(t *testing.T) {
		data, err := json.Marshal(Grid[Mark]{}.With(1, X))
		require.NoError(t, err)
		require.JSONEq(t, `{"grid":[["Empty","X","Empty"],["Empty","Empty","Empty"],["Empty","Empty","Empty"]]}`, string(data))
	})

	t.Run("malformed", func(t *testing.T) {
		cases := map[string]string{
			"missing field": `{}`,
			"short rows":    `{"grid":[["X","X","X"],["X","X","X"]]}`,
			"short row":     `{"grid":[["X","X"],["X","X","X"],["X","X","X"]]}`,
			"bad mark":      `{"grid":[["Z","X","X"],["X","X","X"],["X","X","X"]]}`,
			"not an object": `[1, 2]`,
		}
		for name, input := range cases {
			t.Run(name, func(t *testing.T) {
				var g Grid[Mark]
				require.Error(t, json.Unmarshal([]byte(input), &g))
			})
		}
	})

	t.Run("forced slot", func(t *testing.T) {
		data, err := json.Marshal(Free())
		require.NoError(t, err)
		require.Equal(t, "9", string(data))

		var f Forced
		require.NoError(t, json.Unmarshal([]byte("3"), &f))
		require.Equal(t, At(3), f)
		require.Error(t, json.Unmarshal([]byte("12"), &f))
		require.Error(t, json.Unmarshal([]byte(`"free"`), &f))
	})
}

func TestMark(t *testing.T) {
	require.Equal(t, O, X.Opponent())
	require.Equal(t, X, O.Opponent())
	require.Equal(t, Empty, Empty.Opponent())
	require.Less(t, O, Empty)
	require.Less(t, Empty, X)

	for _, r := range []rune{'x', 'X', 'o', 'O', '.'} {
		m, ok := MarkFromRune(r)
		require.True(t, ok)
		if r != '.' {
			require.Equal(t, r|0x20, m.Rune())
		}
	}
	_, ok := MarkFromRune('z')
	require.False(t, ok)
}
