package dialogyaml_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenekit/scenekit/pkg/adapters/dialogyaml"
	"github.com/scenekit/scenekit/pkg/domain"
	"github.com/scenekit/scenekit/pkg/registry"
)

const quizYAML = `
dialogs:
  - name: Quiz
    scenes:
      - name: welcome
        transitional: true
        messages:
          - "Welcome!"
        relations:
          - to: q1
      - name: q1
        messages:
          - "Question one"
        relations:
          - to: q2
            filters:
              text: a
      - name: q2
        messages:
          - "Question two"
      - name: score
        can_stay: false
        ext:
          weight: 2
    routers:
      - relations:
          - to: welcome
            events: [command]
            filters:
              command: start
          - to: score
            events: [command]
            filters:
              command: score
`

func TestLoad_BuildsResolvableDialogs(t *testing.T) {
	dialogs, err := dialogyaml.Load(strings.NewReader(quizYAML))
	require.NoError(t, err)
	require.Len(t, dialogs, 1)

	reg, err := registry.NewBuilder().Add(dialogs...).Resolve()
	require.NoError(t, err)

	welcome, err := reg.Scene("Quiz.welcome")
	require.NoError(t, err)
	assert.True(t, welcome.Transitional)
	assert.True(t, welcome.CanStay)
	require.Len(t, welcome.Relations, 1)

	target, err := welcome.Relations[0].Target(context.Background(), domain.NewContext(domain.Event{}))
	require.NoError(t, err)
	assert.Equal(t, "Quiz.q1", target.FullName())

	score, err := reg.Scene("Quiz.score")
	require.NoError(t, err)
	assert.False(t, score.CanStay)

	weight, ok := score.ExtValue("weight")
	require.True(t, ok)
	assert.Equal(t, 2, weight)

	routers := reg.Routers()
	require.Len(t, routers, 1)
	require.Len(t, routers[0].Relations, 2)
	assert.True(t, routers[0].Relations[0].Matches(domain.EventCommand))
	assert.False(t, routers[0].Relations[0].Matches(domain.EventMessage))
}

func TestLoad_RelationFiltersGuard(t *testing.T) {
	dialogs, err := dialogyaml.Load(strings.NewReader(quizYAML))
	require.NoError(t, err)

	reg, err := registry.NewBuilder().Add(dialogs...).Resolve()
	require.NoError(t, err)

	q1, err := reg.Scene("Quiz.q1")
	require.NoError(t, err)
	require.Len(t, q1.Relations, 1)

	ok, err := q1.Relations[0].Filters.Evaluate(context.Background(),
		domain.NewContext(domain.Event{Text: "a"}))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = q1.Relations[0].Filters.Evaluate(context.Background(),
		domain.NewContext(domain.Event{Text: "b"}))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoad_CrossDialogReference(t *testing.T) {
	doc := `
dialogs:
  - name: Quiz
    scenes:
      - name: finish
        relations:
          - to_dialog: Game
            to_scene: start
  - name: Game
    scenes:
      - name: start
`
	dialogs, err := dialogyaml.Load(strings.NewReader(doc))
	require.NoError(t, err)

	reg, err := registry.NewBuilder().Add(dialogs...).Resolve()
	require.NoError(t, err)

	finish, err := reg.Scene("Quiz.finish")
	require.NoError(t, err)

	target, err := finish.Relations[0].Target(context.Background(), domain.NewContext(domain.Event{}))
	require.NoError(t, err)
	assert.Equal(t, "Game.start", target.FullName())
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "NoDialogs",
			doc:  `dialogs: []`,
			want: "no dialogs",
		},
		{
			name: "RelationWithoutTarget",
			doc: `
dialogs:
  - name: Quiz
    scenes:
      - name: q1
        relations:
          - filters:
              text: a
`,
			want: "no target",
		},
		{
			name: "RelationWithBothTargets",
			doc: `
dialogs:
  - name: Quiz
    scenes:
      - name: q1
        relations:
          - to: q2
            to_scene: q3
`,
			want: "both",
		},
		{
			name: "UnknownFilterKeyword",
			doc: `
dialogs:
  - name: Quiz
    scenes:
      - name: q1
        relations:
          - to: q1
            filters:
              txet: typo
`,
			want: "invalid filter spec",
		},
		{
			name: "NotYAML",
			doc:  `{{{`,
			want: "parse",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := dialogyaml.Load(strings.NewReader(tc.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := dialogyaml.LoadFile("does-not-exist.yaml")
	assert.Error(t, err)
}
