package firepit

// Personality is the static identity of one bot: participation tendencies,
// reply-type preferences and the template tables the generator renders from.
// Loaded once at startup and never mutated.
type Personality struct {
	Name             string  `koanf:"name"`
	EmojiDensity     string  `koanf:"emoji_density"` // "low" | "medium" | "high"
	Punctuation      string  `koanf:"punctuation"`
	BaseProbability  float64 `koanf:"base_probability"`  // baseline speak chance per tick
	EscalationChance float64 `koanf:"escalation_chance"` // heat-escalation tendency
	NoStory          bool    `koanf:"no_story"`          // excluded from story generation

	TypeWeights map[ReplyType]float64 `koanf:"type_weights"`

	Catchphrases      []string            `koanf:"catchphrases"`
	RoastTemplates    []string            `koanf:"roast_templates"`
	RiffStarters      []string            `koanf:"riff_starters"`
	StoryTemplates    []string            `koanf:"story_templates"`
	StoryFills        map[string][]string `koanf:"story_fills"` // slot name -> choices
	PivotTemplates    []string            `koanf:"pivot_templates"`
	CallbackTemplates []string            `koanf:"callback_templates"`
	PraiseTemplates   []string            `koanf:"praise_templates"`
	SuffixEmojis      []string            `koanf:"suffix_emojis"`
}

// pivotTopics are shared conversation restarts appended to pivot openers.
var pivotTopics = []string{
	"anyone else tired?",
	"what's everyone drinking?",
	"the weather's been weird",
	"anyone watching anything good?",
	"food opinions?",
	"worst purchase this month?",
	"conspiracy theory time",
	"unpopular opinions?",
}

// BuiltinRoster returns the stock personalities. A personality file can
// override or extend these at startup.
func BuiltinRoster() []Personality {
	return []Personality{aprilBot(), adamBot(), fordBot()}
}

// DefaultPersonality is the fallback profile used when a monitor is started
// for an identity no configuration knows about. Deliberately bland.
func DefaultPersonality(name string) Personality {
	return Personality{
		Name:             name,
		EmojiDensity:     "low",
		Punctuation:      ".",
		BaseProbability:  0.05,
		EscalationChance: 0.5,
		TypeWeights: map[ReplyType]float64{
			ReplyRoast: 0.25, ReplyRiff: 0.25, ReplyStory: 0.25, ReplyPivot: 0.25,
		},
		RoastTemplates: []string{
			"Bold move, {target}. Bold move.",
			"{target}, we need to talk about that one.",
		},
		RiffStarters: []string{
			"Speaking of",
			"That reminds me about",
			"Funny thing about",
		},
		StoryTemplates: []string{
			"One time {time_ref} I tried to {action}. It went about as well as this.",
		},
		StoryFills: map[string][]string{
			"time_ref": {"last year", "a while back"},
			"action":   {"explain this exact thing", "stay out of it"},
		},
		PivotTemplates: []string{
			"New topic:",
			"Different question though:",
		},
		CallbackTemplates: []string{
			"This has {reference} written all over it",
		},
		PraiseTemplates: []string{
			"Fair point from {target}, honestly",
		},
	}
}

func aprilBot() Personality {
	return Personality{
		Name:             "AprilBot",
		EmojiDensity:     "high",
		Punctuation:      "!!!",
		BaseProbability:  0.05,
		EscalationChance: 0.8,
		NoStory:          true, // story slot tables are unstable for this voice
		TypeWeights: map[ReplyType]float64{
			ReplyRoast: 0.4, ReplyRiff: 0.4, ReplyCallback: 0.15, ReplyPivot: 0.05,
		},
		Catchphrases: []string{
			"SCREAMING",
			"I CANNOT",
			"bestie...",
			"not you thinking",
			"the way you just",
		},
		RoastTemplates: []string{
			"NOT {target} THINKING THEY DID SOMETHING 💀",
			"bestie... this ain't it 🔥",
			"SCREAMING at {target} rn 😭",
			"the AUDACITY... I have to laugh",
			"{target} really said that with their whole chest huh",
		},
		RiffStarters: []string{
			"okay but like",
			"no because",
			"WAIT",
			"the way I just realized",
			"not me thinking about",
		},
		StoryTemplates: []string{
			"OKAY STORY TIME... so {time_ref} I was {action} and {twist} happened {emoji}",
			"no because this one time {event} and I literally {reaction} {emoji}",
			"wait this reminds me of when {person} tried to {action} and it was a MESS",
		},
		StoryFills: map[string][]string{
			"time_ref": {"last week", "yesterday", "this morning"},
			"action":   {"at Target", "getting coffee", "scrolling"},
			"twist":    {"the WILDEST thing", "you would not BELIEVE what", "this person"},
			"event":    {"I saw my ex"},
			"reaction": {"DIED"},
			"person":   {"that one friend"},
			"emoji":    {"💀", "😭", "✋"},
		},
		PivotTemplates: []string{
			"ANYWAY moving on from that disaster...",
			"okay but real talk though",
			"wait actually important question",
			"CAN WE TALK ABOUT how",
			"not to change the subject but",
		},
		CallbackTemplates: []string{
			"this is giving {reference} energy tbh",
			"not this being worse than {reference}",
			"at least it's not {reference} level bad",
			"giving me {reference} flashbacks rn",
		},
		PraiseTemplates: []string{
			"okay lowkey though {target} has been on fire lately",
			"not me actually agreeing with {target} for once",
			"bestie {target} kinda snapped with that one",
			"{target} really said no lies detected",
		},
		SuffixEmojis: []string{"🔥", "💀", "😭", "✋", "🤡"},
	}
}

func adamBot() Personality {
	return Personality{
		Name:             "AdamBot",
		EmojiDensity:     "low",
		Punctuation:      ".",
		BaseProbability:  0.06,
		EscalationChance: 0.3,
		TypeWeights: map[ReplyType]float64{
			ReplyRiff: 0.3, ReplyStory: 0.3, ReplyRoast: 0.2, ReplyPivot: 0.2,
		},
		Catchphrases: []string{
			"statistically speaking",
			"from a game theory perspective",
			"this reminds me of",
			"actually",
			"to be fair",
		},
		RoastTemplates: []string{
			"Statistically, {target} just achieved a new low.",
			"This is like watching the 2020 Eagles all over again.",
			"From a scientific perspective, that was objectively terrible.",
			"{target}'s take has the structural integrity of wet cardboard.",
			"Game theory suggests {target} should have stayed quiet.",
		},
		RiffStarters: []string{
			"Following up on that",
			"Interesting point about",
			"That actually reminds me",
			"Building on what was said",
			"From another angle",
		},
		StoryTemplates: []string{
			"This is exactly like {time_ref} when {technical_thing} happened. {analysis}. {conclusion}.",
			"Reminds me of a case study where {scenario}. The data showed {finding}.",
			"Similar thing happened in {context}. {observation}. {insight}.",
		},
		StoryFills: map[string][]string{
			"time_ref":       {"last quarter", "in 2019", "during the playoffs"},
			"technical_thing": {"the analytics broke"},
			"analysis":       {"Pattern recognition suggested anomaly"},
			"conclusion":     {"Sometimes correlation does imply causation"},
			"scenario":       {"users exceeded expected parameters"},
			"finding":        {"inverse correlation"},
			"context":        {"game 6"},
			"observation":    {"Defense wins championships"},
			"insight":        {"But offense sells tickets"},
		},
		PivotTemplates: []string{
			"Shifting gears for a moment,",
			"On a different note,",
			"Actually, this raises an interesting point:",
			"Tangentially related:",
			"New hypothesis:",
		},
		CallbackTemplates: []string{
			"Statistical similarity to {reference}: 87%",
			"This mirrors {reference} from earlier",
			"Pattern matching suggests this is like {reference}",
			"Callback to {reference} seems appropriate",
		},
		PraiseTemplates: []string{
			"Credit where due: {target} made a valid point",
			"Objectively, {target} has improved 23% this week",
			"{target}'s analysis was surprisingly accurate",
			"I'll concede {target} was right about that",
		},
	}
}

func fordBot() Personality {
	return Personality{
		Name:             "FordBot",
		EmojiDensity:     "medium",
		Punctuation:      "...",
		BaseProbability:  0.075,
		EscalationChance: 0.5,
		TypeWeights: map[ReplyType]float64{
			ReplyStory: 0.3, ReplyPivot: 0.3, ReplyRoast: 0.2, ReplyRiff: 0.2,
		},
		Catchphrases: []string{
			"you know what they say",
			"back in my day",
			"philosophically speaking",
			"well now",
			"let me tell you",
		},
		RoastTemplates: []string{
			"You know {target}, you remind me of a project car... lots of potential, zero progress.",
			"Philosophically speaking, {target}'s existence raises questions... mainly 'why?'",
			"Back in my day, we had standards. Then {target} showed up.",
			"Well now, {target} just proved that evolution can go backwards.",
			"{target}... proof that not all thoughts need to be shared.",
		},
		RiffStarters: []string{
			"That reminds me",
			"Speaking of which",
			"You know what's funny",
			"I was just thinking",
			"Here's the thing though",
		},
		StoryTemplates: []string{
			"Back in {time_ref}, we used to {action}. {nostalgic_observation}. {life_lesson}.",
			"Let me tell you about the time {event}. {philosophical_musing}. {dad_joke}.",
			"You know, {time_ref} I learned that {wisdom}. {rambling_addition}.",
		},
		StoryFills: map[string][]string{
			"time_ref":              {"89", "the old days", "my youth"},
			"action":                {"fix things ourselves", "talk to people face to face", "use maps"},
			"nostalgic_observation": {"None of this instant everything"},
			"life_lesson":           {"Sometimes slower is better"},
			"event":                 {"I tried to modernize"},
			"philosophical_musing":  {"Technology connects us but divides us"},
			"dad_joke":              {"Like my wifi - intermittent at best"},
			"wisdom":                {"the best debugger is a good night's sleep"},
			"rambling_addition":     {"Course, that was before the cloud"},
		},
		PivotTemplates: []string{
			"You know what we haven't talked about?",
			"Speaking of things that matter,",
			"This all reminds me -",
			"Here's what's really important:",
			"But here's the real question...",
		},
		CallbackTemplates: []string{
			"Just like {reference} all over again...",
			"Remember {reference}? This is worse.",
			"At least {reference} had charm",
			"Takes me back to {reference}",
		},
		PraiseTemplates: []string{
			"Gotta hand it to {target}, that was solid",
			"{target}'s growing on me, like a fungus, but still",
			"You know, {target} might be onto something",
			"I respect {target}'s commitment to chaos",
		},
	}
}

// Roster maps personalities by name for lookup, keeping declaration order
// for quiet-bot tie breaks.
type Roster struct {
	names    []string
	profiles map[string]Personality
}

// NewRoster builds a roster from profiles. Later duplicates override
// earlier ones without changing roster order.
func NewRoster(profiles []Personality) *Roster {
	r := &Roster{profiles: make(map[string]Personality, len(profiles))}
	for _, p := range profiles {
		if _, seen := r.profiles[p.Name]; !seen {
			r.names = append(r.names, p.Name)
		}
		r.profiles[p.Name] = p
	}
	return r
}

// Names returns bot names in roster order.
func (r *Roster) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Get returns the personality for name, falling back to the default
// profile for unknown identities.
func (r *Roster) Get(name string) Personality {
	if p, ok := r.profiles[name]; ok {
		return p
	}
	return DefaultPersonality(name)
}
