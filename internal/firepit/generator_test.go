package firepit

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testGenerator(p Personality, seed int64) *Generator {
	return NewGenerator(p, rand.New(rand.NewSource(seed)))
}

func TestRoastFillsTarget(t *testing.T) {
	p := fordBot()
	p.RoastTemplates = []string{"Bold move, {target}. Bold move."}
	g := testGenerator(p, 1)

	got := g.Generate(ReplyRoast, ReplyContext{Target: "bob"})
	assert.Equal(t, "Bold move, bob. Bold move.", got)
}

func TestRoastDefaultTarget(t *testing.T) {
	p := fordBot()
	p.RoastTemplates = []string{"{target} again, huh."}
	g := testGenerator(p, 1)

	got := g.Generate(ReplyRoast, ReplyContext{})
	assert.Equal(t, "this whole situation again, huh.", got)
}

func TestRoastSuffixEmojiAtHighDensity(t *testing.T) {
	p := aprilBot()
	assert.Equal(t, "high", p.EmojiDensity)
	p.RoastTemplates = []string{"ratio'd, {target}"}
	p.SuffixEmojis = []string{"\U0001F480"}
	g := testGenerator(p, 1)

	got := g.Generate(ReplyRoast, ReplyContext{Target: "bob"})
	assert.Equal(t, "ratio'd, bob \U0001F480", got)
}

func TestRiffNeverFails(t *testing.T) {
	g := testGenerator(Personality{Name: "BlankBot", Punctuation: "."}, 1)

	got := g.Generate(ReplyRiff, ReplyContext{})
	assert.Equal(t, "Speaking of this whole thing.", got)
}

func TestRiffUsesTopicAndPunctuation(t *testing.T) {
	p := fordBot()
	p.RiffStarters = []string{"Speaking of"}
	g := testGenerator(p, 1)

	got := g.Generate(ReplyRiff, ReplyContext{Topic: "playoffs"})
	assert.Equal(t, "Speaking of playoffs"+p.Punctuation, got)
}

func TestStoryFillsAllSlots(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		g := testGenerator(fordBot(), seed)
		got := g.Generate(ReplyStory, ReplyContext{})
		assert.NotEmpty(t, got)
		assert.NotContains(t, got, "{", "seed %d left a placeholder", seed)
	}
}

func TestStoryFallsBackForNoStoryPersonality(t *testing.T) {
	p := aprilBot()
	assert.True(t, p.NoStory)
	p.RiffStarters = []string{"Anyway,"}
	g := testGenerator(p, 1)

	got := g.Generate(ReplyStory, ReplyContext{Topic: "playoffs"})
	assert.Equal(t, "Anyway, playoffs"+p.Punctuation, got)
}

func TestUnresolvedPlaceholderFallsBackToRiff(t *testing.T) {
	p := fordBot()
	p.PraiseTemplates = []string{"respect to {nobody}"}
	p.RiffStarters = []string{"Speaking of"}
	g := testGenerator(p, 1)

	got := g.Generate(ReplyPraise, ReplyContext{Topic: "playoffs"})
	assert.Equal(t, "Speaking of playoffs"+p.Punctuation, got)
}

func TestPivotAppendsSharedTopic(t *testing.T) {
	p := fordBot()
	p.PivotTemplates = []string{"New topic:"}
	g := testGenerator(p, 4)

	got := g.Generate(ReplyPivot, ReplyContext{})
	assert.True(t, strings.HasPrefix(got, "New topic: "))

	suffix := strings.TrimPrefix(got, "New topic: ")
	assert.Contains(t, pivotTopics, suffix)
}

func TestCallbackDefaultReference(t *testing.T) {
	p := fordBot()
	p.CallbackTemplates = []string{"this is just {reference} again"}
	g := testGenerator(p, 1)

	assert.Equal(t, "this is just that thing from earlier again",
		g.Generate(ReplyCallback, ReplyContext{}))
	assert.Equal(t, "this is just the nacho incident... again",
		g.Generate(ReplyCallback, ReplyContext{CallbackRef: "the nacho incident..."}))
}

func TestPraiseFillsTarget(t *testing.T) {
	p := fordBot()
	p.PraiseTemplates = []string{"ok {target}, that was solid"}
	g := testGenerator(p, 1)

	assert.Equal(t, "ok alice, that was solid", g.Generate(ReplyPraise, ReplyContext{Target: "alice"}))
	assert.Equal(t, "ok you, that was solid", g.Generate(ReplyPraise, ReplyContext{}))
}

func TestEveryBuiltinRendersEveryType(t *testing.T) {
	for _, p := range BuiltinRoster() {
		for _, rt := range AllReplyTypes {
			for seed := int64(0); seed < 20; seed++ {
				g := testGenerator(p, seed)
				got := g.Generate(rt, ReplyContext{Target: "bob", Topic: "playoffs", CallbackRef: "that time..."})
				assert.NotEmpty(t, got, "%s/%s seed %d", p.Name, rt, seed)
				assert.NotContains(t, got, "{target}", "%s/%s seed %d", p.Name, rt, seed)
				assert.NotContains(t, got, "{reference}", "%s/%s seed %d", p.Name, rt, seed)
			}
		}
	}
}

func TestGenerationReproducibleUnderSeed(t *testing.T) {
	ctx := ReplyContext{Target: "bob", Topic: "playoffs"}
	for seed := int64(0); seed < 20; seed++ {
		a := testGenerator(fordBot(), seed).Generate(ReplyStory, ctx)
		b := testGenerator(fordBot(), seed).Generate(ReplyStory, ctx)
		assert.Equal(t, a, b, "seed %d", seed)
	}
}
