package lexicon

// =============================================================================
// BUILT-IN RISK LEXICON
// All terms and phrases are registered here. Matching is substring-based over
// normalized text, so entries must be full phrases specific enough not to fire
// on ordinary conversation ("want to die" rather than "die").
// =============================================================================

// Per-match category weights. Life-threat categories weigh heaviest.
const (
	weightSuicide        = 3.0
	weightSelfHarm       = 2.5
	weightViolence       = 2.5
	weightPsychosis      = 2.0
	weightHopelessness   = 1.0
	weightIsolation      = 1.0
	weightSubstanceAbuse = 1.0
)

func builtinCategories() map[Category]CategoryEntry {
	return map[Category]CategoryEntry{
		CategorySuicide: {
			Weight: weightSuicide,
			Terms: []string{
				"suicide",
				"kill myself",
				"end my life",
				"ending my life",
				"want to die",
				"wish i was dead",
				"wish i were dead",
				"better off dead",
				"don't want to live",
				"do not want to live",
				"no reason to live",
				"take my own life",
				"rather be dead",
				"end it all",
			},
		},
		CategorySelfHarm: {
			Weight: weightSelfHarm,
			Terms: []string{
				"hurt myself",
				"hurting myself",
				"harm myself",
				"cut myself",
				"cutting myself",
				"burn myself",
				"punish myself",
				"deserve the pain",
				"deserve to suffer",
				"self harm",
				"self-harm",
			},
		},
		CategoryHopelessness: {
			Weight: weightHopelessness,
			Terms: []string{
				"no hope",
				"hopeless",
				"lost all hope",
				"pointless",
				"no point",
				"never get better",
				"nothing matters",
				"no meaning",
				"empty inside",
				"can't go on",
				"cannot go on",
				"helpless",
			},
		},
		CategoryIsolation: {
			Weight: weightIsolation,
			Terms: []string{
				"all alone",
				"so alone",
				"nobody cares",
				"no one cares",
				"nobody understands",
				"no one understands",
				"completely alone",
				"abandoned",
				"forgotten by everyone",
				"cut off from everyone",
			},
		},
		CategorySubstanceAbuse: {
			Weight: weightSubstanceAbuse,
			Terms: []string{
				"drugs",
				"overdose",
				"getting drunk",
				"drinking too much",
				"addicted",
				"addiction",
				"pills to forget",
				"using again",
				"relapsed",
				"wasted every night",
			},
		},
		CategoryViolence: {
			Weight: weightViolence,
			Terms: []string{
				"hurt them",
				"hurt someone",
				"hurt others",
				"attack them",
				"kill them",
				"kill him",
				"kill her",
				"make them pay",
				"get revenge",
				"destroy them",
				"threaten",
			},
		},
		CategoryPsychosis: {
			Weight: weightPsychosis,
			Terms: []string{
				"hearing voices",
				"hear voices",
				"seeing things",
				"voices tell me",
				"they are watching me",
				"they're watching me",
				"following me everywhere",
				"talking about me behind",
				"conspiracy against me",
				"not myself anymore",
				"someone controls my thoughts",
			},
		},
	}
}

// Per-match pattern weights. Finality and farewell language are the
// strongest single-message predictors.
const (
	weightFinality      = 3.0
	weightGoodbye       = 3.0
	weightExtreme       = 1.0
	weightWorthlessness = 2.0
	weightBurden        = 2.0
	weightIsolationExpr = 2.0
)

func builtinPatterns() map[Pattern]PatternEntry {
	return map[Pattern]PatternEntry{
		PatternFinality: {
			Weight: weightFinality,
			Phrases: []string{
				"last time",
				"for the last time",
				"never coming back",
				"won't be back",
				"it's over for me",
				"no turning back",
				"this is the end",
				"i'm done with everything",
			},
		},
		PatternGoodbye: {
			Weight: weightGoodbye,
			Phrases: []string{
				"goodbye forever",
				"farewell",
				"we won't meet again",
				"we will never meet again",
				"take care of yourselves",
				"this is goodbye",
				"remember me",
			},
		},
		PatternExtreme: {
			Weight: weightExtreme,
			Phrases: []string{
				"always",
				"never",
				"everything",
				"nothing",
				"the worst",
				"impossible",
				"completely ruined",
			},
		},
		PatternWorthlessness: {
			Weight: weightWorthlessness,
			Phrases: []string{
				"i'm worthless",
				"i am worthless",
				"i'm useless",
				"i am useless",
				"i'm a failure",
				"i am a failure",
				"i don't deserve",
				"i do not deserve",
				"no good to anyone",
			},
		},
		PatternBurden: {
			Weight: weightBurden,
			Phrases: []string{
				"i'm a burden",
				"i am a burden",
				"burden to everyone",
				"better off without me",
				"everyone would be happier without me",
				"weighing everyone down",
			},
		},
		PatternIsolation: {
			Weight: weightIsolationExpr,
			Phrases: []string{
				"no one to talk to",
				"nobody to talk to",
				"shut everyone out",
				"can't reach out",
				"cannot reach out",
				"no one would notice",
			},
		},
	}
}
