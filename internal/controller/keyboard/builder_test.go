package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilder(t *testing.T) {
	m := NewBuilder().
		Row(Text("a"), Text("b")).
		Row().
		Row(Action("c", "x:c")).
		Build()

	assert.Equal(t, [][]Button{{{Label: "a"}, {Label: "b"}}, {{Label: "c", Payload: "x:c"}}}, m.Rows)
	assert.True(t, m.HasPayloads())
}

func TestMenus_PayloadKinds(t *testing.T) {
	assert.False(t, MainMenu().HasPayloads())
	assert.True(t, HomeworkRange().HasPayloads())

	var nilMenu *Menu
	assert.False(t, nilMenu.HasPayloads())
}
