package firepit

import (
	"fmt"
	"math/rand"
	"strings"
)

// ReplyContext carries the contextual facts a rendered reply can draw on.
type ReplyContext struct {
	Target      string // who a roast or praise is aimed at
	Topic       string // current conversation topic
	CallbackRef string // earlier moment worth referencing
	Health      ThreadHealthState
}

// Generator renders reply text from the identity's template tables. Any
// rendering failure falls back to a riff, which always succeeds.
type Generator struct {
	identity Personality
	rng      *rand.Rand
}

// NewGenerator creates a generator for one identity.
func NewGenerator(identity Personality, rng *rand.Rand) *Generator {
	return &Generator{identity: identity, rng: rng}
}

// Generate renders a reply of the requested type.
func (g *Generator) Generate(t ReplyType, ctx ReplyContext) string {
	text, err := g.render(t, ctx)
	if err != nil {
		return g.riff(ctx)
	}
	return text
}

func (g *Generator) render(t ReplyType, ctx ReplyContext) (string, error) {
	switch t {
	case ReplyRoast:
		return g.roast(ctx)
	case ReplyStory:
		return g.story(ctx)
	case ReplyPivot:
		return g.pivot()
	case ReplyCallback:
		return g.callback(ctx)
	case ReplyPraise:
		return g.praise(ctx)
	default:
		return g.riff(ctx), nil
	}
}

func (g *Generator) roast(ctx ReplyContext) (string, error) {
	target := ctx.Target
	if target == "" {
		target = "this whole situation"
	}
	text, err := g.fill(g.pick(g.identity.RoastTemplates), map[string]string{"target": target})
	if err != nil {
		return "", err
	}
	if g.identity.EmojiDensity == "high" && len(g.identity.SuffixEmojis) > 0 {
		text += " " + g.pick(g.identity.SuffixEmojis)
	}
	return text, nil
}

// riff is the one generator that cannot fail: a starter, the topic, and
// the identity's punctuation.
func (g *Generator) riff(ctx ReplyContext) string {
	topic := ctx.Topic
	if topic == "" {
		topic = "this whole thing"
	}
	starter := g.pick(g.identity.RiffStarters)
	if starter == "" {
		starter = "Speaking of"
	}
	return starter + " " + topic + g.identity.Punctuation
}

func (g *Generator) story(ctx ReplyContext) (string, error) {
	if g.identity.NoStory {
		return "", fmt.Errorf("%s does not tell stories", g.identity.Name)
	}
	template := g.pick(g.identity.StoryTemplates)
	slots := make(map[string]string, len(g.identity.StoryFills))
	for slot, choices := range g.identity.StoryFills {
		if len(choices) > 0 {
			slots[slot] = choices[g.rng.Intn(len(choices))]
		}
	}
	return g.fill(template, slots)
}

func (g *Generator) pivot() (string, error) {
	opener, err := g.fill(g.pick(g.identity.PivotTemplates), nil)
	if err != nil {
		return "", err
	}
	return opener + " " + pivotTopics[g.rng.Intn(len(pivotTopics))], nil
}

func (g *Generator) callback(ctx ReplyContext) (string, error) {
	ref := ctx.CallbackRef
	if ref == "" {
		ref = "that thing from earlier"
	}
	return g.fill(g.pick(g.identity.CallbackTemplates), map[string]string{"reference": ref})
}

func (g *Generator) praise(ctx ReplyContext) (string, error) {
	target := ctx.Target
	if target == "" {
		target = "you"
	}
	return g.fill(g.pick(g.identity.PraiseTemplates), map[string]string{"target": target})
}

// pick returns a uniformly random element, empty string for an empty table.
func (g *Generator) pick(options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[g.rng.Intn(len(options))]
}

// fill substitutes {slot} placeholders. An empty template or an
// unresolved placeholder is an error so the caller can fall back.
func (g *Generator) fill(template string, slots map[string]string) (string, error) {
	if template == "" {
		return "", fmt.Errorf("no template for %s", g.identity.Name)
	}
	out := template
	for slot, value := range slots {
		out = strings.ReplaceAll(out, "{"+slot+"}", value)
	}
	if i := strings.IndexByte(out, '{'); i >= 0 && strings.IndexByte(out[i:], '}') > 0 {
		return "", fmt.Errorf("unresolved placeholder in %q", template)
	}
	return out, nil
}
