package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTilt(t *testing.T) {
	b := Bounds{Width: 400, Height: 200}

	tests := []struct {
		name  string
		p     Pointer
		wantX float64
		wantY float64
	}{
		{name: "centre", p: Pointer{X: 200, Y: 100}, wantX: 0, wantY: 0},
		{name: "top left", p: Pointer{X: 0, Y: 0}, wantX: -5, wantY: 10},
		{name: "bottom right", p: Pointer{X: 400, Y: 200}, wantX: 5, wantY: -10},
		{name: "outside clamps to edge", p: Pointer{X: -1000, Y: 5000}, wantX: 5, wantY: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Tilt(tt.p, b)
			assert.InDelta(t, tt.wantX, r.X, 1e-9)
			assert.InDelta(t, tt.wantY, r.Y, 1e-9)
			assert.Equal(t, hoverScale, r.Scale)
		})
	}
}

func TestTiltBounded(t *testing.T) {
	r := Tilt(Pointer{X: 0, Y: 0}, Bounds{Width: 2000, Height: 2000})
	assert.Equal(t, MaxTiltDegrees, r.Y)
	assert.Equal(t, -MaxTiltDegrees, r.X)
}

func TestTiltZeroBounds(t *testing.T) {
	assert.Equal(t, Neutral, Tilt(Pointer{X: 3, Y: 4}, Bounds{}))
}

func TestRotationTransform(t *testing.T) {
	assert.Equal(t,
		"perspective(1000px) rotateX(0deg) rotateY(0deg) scale3d(1, 1, 1)",
		Neutral.Transform())
	assert.Equal(t,
		"perspective(1000px) rotateX(-5deg) rotateY(10deg) scale3d(1.05, 1.05, 1.05)",
		Tilt(Pointer{}, Bounds{Width: 400, Height: 200}).Transform())
}

func TestCardState(t *testing.T) {
	s := NewCardState()
	assert.Equal(t, Idle, s.Hover)
	assert.False(t, s.RevealDetails())

	s.Enter()
	assert.True(t, s.RevealDetails())

	s.Move(Pointer{X: 0, Y: 0}, Bounds{Width: 100, Height: 100})
	assert.NotEqual(t, Neutral, s.Rotation)

	s.Leave()
	assert.Equal(t, Idle, s.Hover)
	assert.Equal(t, Neutral, s.Rotation)
	assert.Equal(t, "idle", s.Hover.String())
}

func TestClickAction(t *testing.T) {
	tests := []struct {
		name    string
		project Project
		want    ClickAction
	}{
		{
			name:    "detail view wins over link",
			project: Project{DetailView: true, Link: "https://x.example"},
			want:    ClickAction{Kind: ActionOpenModal},
		},
		{
			name:    "detail view without images",
			project: Project{DetailView: true},
			want:    ClickAction{Kind: ActionOpenModal},
		},
		{
			name:    "link only",
			project: Project{Link: "https://x.example"},
			want:    ClickAction{Kind: ActionNavigate, URL: "https://x.example"},
		},
		{
			name:    "nothing",
			project: Project{},
			want:    ClickAction{Kind: ActionNone},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.project.ClickAction())
		})
	}
}

func TestVisitLinkIndependentOfClick(t *testing.T) {
	p := Project{DetailView: true, Link: "https://x.example"}
	assert.Equal(t, ActionOpenModal, p.ClickAction().Kind)

	link, ok := p.VisitLink()
	assert.True(t, ok)
	assert.Equal(t, "https://x.example", link)

	_, ok = Project{}.VisitLink()
	assert.False(t, ok)
}
