package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlan(t *testing.T) {
	aPlan := New()
	assert.NotEmpty(t, aPlan.ID)
	assert.False(t, aPlan.CreatedAt.IsZero())

	aPlan.Preempt("r1", "p1", 2)
	aPlan.Terminate("p2")

	assert.Len(t, aPlan.Actions, 2)
	assert.Equal(t, KindPreempt, aPlan.Actions[0].Kind)
	assert.Equal(t, KindTerminate, aPlan.Actions[1].Kind)
	assert.Equal(t, []string{"p2"}, aPlan.Terminated())
	assert.Equal(t, "preempt 2 x r1 from p1; terminate p2", aPlan.String())
}
