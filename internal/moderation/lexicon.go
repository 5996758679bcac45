// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package moderation

// polarEntry is a pattern-lexicon entry: polarity in [-1,1], subjectivity in [0,1].
type polarEntry struct {
	polarity     float64
	subjectivity float64
}

// patternLexicon scores mostly adjectives, averaged per text.
var patternLexicon = map[string]polarEntry{
	"good":         {0.7, 0.6},
	"great":        {0.8, 0.75},
	"excellent":    {1.0, 1.0},
	"amazing":      {0.6, 0.9},
	"awesome":      {1.0, 1.0},
	"wonderful":    {1.0, 1.0},
	"fantastic":    {0.4, 0.9},
	"love":         {0.5, 0.6},
	"loved":        {0.7, 0.8},
	"lovely":       {0.5, 0.75},
	"happy":        {0.8, 1.0},
	"nice":         {0.6, 1.0},
	"best":         {1.0, 0.3},
	"better":       {0.5, 0.5},
	"beautiful":    {0.85, 1.0},
	"perfect":      {1.0, 1.0},
	"fun":          {0.3, 0.2},
	"cool":         {0.35, 0.65},
	"glad":         {0.5, 1.0},
	"excited":      {0.375, 0.75},
	"exciting":     {0.3, 0.8},
	"brilliant":    {0.9, 1.0},
	"incredible":   {0.9, 0.9},
	"enjoy":        {0.4, 0.5},
	"favorite":     {0.5, 1.0},
	"proud":        {0.8, 1.0},
	"sweet":        {0.35, 0.65},
	"helpful":      {0.4, 0.5},
	"interesting":  {0.5, 0.5},
	"funny":        {0.25, 1.0},
	"thanks":       {0.2, 0.2},
	"bad":          {-0.7, 0.67},
	"worse":        {-0.4, 0.6},
	"terrible":     {-1.0, 1.0},
	"awful":        {-1.0, 1.0},
	"horrible":     {-1.0, 1.0},
	"worst":        {-1.0, 1.0},
	"hate":         {-0.8, 0.9},
	"hated":        {-0.9, 0.7},
	"sad":          {-0.5, 1.0},
	"angry":        {-0.5, 1.0},
	"stupid":       {-0.8, 1.0},
	"dumb":         {-0.375, 0.5},
	"ugly":         {-0.7, 1.0},
	"boring":       {-1.0, 1.0},
	"annoying":     {-0.8, 0.9},
	"disgusting":   {-1.0, 1.0},
	"pathetic":     {-1.0, 1.0},
	"worthless":    {-0.8, 0.8},
	"poor":         {-0.4, 0.6},
	"wrong":        {-0.5, 0.9},
	"sick":         {-0.71, 0.86},
	"nasty":        {-1.0, 1.0},
	"gross":        {-0.4, 0.5},
	"disappointed": {-0.75, 0.75},
	"useless":      {-0.5, 0.2},
	"lame":         {-0.5, 0.75},
	"fake":         {-0.5, 1.0},
	"crazy":        {-0.6, 0.9},
	"scary":        {-0.5, 1.0},
	"afraid":       {-0.6, 0.9},
	"mad":          {-0.625, 1.0},
	"furious":      {-0.6, 0.9},
	"unhappy":      {-0.6, 0.9},
}

// patternIntensifiers scale the polarity and subjectivity of the next word.
var patternIntensifiers = map[string]float64{
	"very":       1.3,
	"really":     1.3,
	"so":         1.3,
	"super":      1.3,
	"extremely":  1.5,
	"incredibly": 1.5,
	"absolutely": 1.4,
	"totally":    1.2,
	"quite":      1.1,
	"pretty":     1.1,
	"somewhat":   0.7,
	"slightly":   0.5,
	"barely":     0.4,
}

// valenceLexicon holds word valences on a -4..4 scale.
var valenceLexicon = map[string]float64{
	"love": 3.2, "loved": 2.9, "lovely": 2.8, "good": 1.9, "great": 3.1,
	"excellent": 2.7, "amazing": 2.8, "awesome": 3.1, "wonderful": 2.7,
	"fantastic": 2.6, "best": 3.2, "better": 1.9, "nice": 1.8, "happy": 2.7,
	"glad": 2.0, "beautiful": 2.9, "perfect": 2.7, "fun": 2.3, "cool": 1.3,
	"enjoy": 2.2, "excited": 1.4, "proud": 2.1, "brilliant": 2.8,
	"thanks": 1.9, "thank": 1.5, "win": 2.8, "wow": 2.8, "yay": 2.4,
	"lol": 1.8, "haha": 2.0, "smile": 1.5, "funny": 1.9, "sweet": 2.0,
	"helpful": 1.7, "interesting": 1.7, "favorite": 2.0, "support": 1.7,
	"bad": -2.5, "worse": -2.1, "terrible": -2.1, "awful": -2.0,
	"horrible": -2.5, "worst": -3.1, "hate": -2.7, "hated": -3.2,
	"sad": -2.1, "angry": -2.3, "stupid": -2.4, "idiot": -2.3,
	"moron": -2.2, "dumb": -2.3, "ugly": -2.2, "loser": -2.4,
	"pathetic": -2.3, "worthless": -1.9, "trash": -1.5, "garbage": -1.5,
	"kill": -3.7, "die": -2.9, "dead": -3.3, "boring": -1.3,
	"annoying": -1.8, "disgusting": -2.4, "gross": -2.1, "nasty": -2.6,
	"sick": -2.3, "wrong": -2.1, "fail": -2.5, "failed": -2.3, "poor": -2.1,
	"fake": -2.0, "lame": -1.8, "scary": -2.2, "afraid": -2.2,
	"scared": -1.9, "fear": -2.2, "mad": -2.2, "furious": -2.7,
	"rage": -2.6, "annoyed": -1.6, "frustrated": -2.0,
	"disappointed": -1.9, "unhappy": -1.8, "cry": -2.1, "tears": -0.9,
	"hurt": -2.4, "broken": -2.1, "threat": -2.4, "attack": -2.1,
	"violence": -3.1, "racist": -3.1, "sexist": -2.2, "useless": -1.8,
	"worry": -1.9, "anxious": -1.0, "panic": -2.3, "nervous": -1.1,
	"depressed": -2.3, "outraged": -2.3, "revolting": -2.5, "yuck": -1.8,
	"fuck": -2.5, "shit": -2.6, "crap": -1.6, "damn": -1.7, "hell": -2.0,
	"bitch": -2.8, "bastard": -2.5, "piss": -1.7,
}

// valenceBoosters raise or dampen the valence of words that follow them.
var valenceBoosters = map[string]float64{
	"absolutely": boosterIncrement, "amazingly": boosterIncrement, "awfully": boosterIncrement,
	"completely": boosterIncrement, "considerably": boosterIncrement, "deeply": boosterIncrement,
	"enormously": boosterIncrement, "entirely": boosterIncrement, "especially": boosterIncrement,
	"exceptionally": boosterIncrement, "extremely": boosterIncrement, "greatly": boosterIncrement,
	"highly": boosterIncrement, "hugely": boosterIncrement, "incredibly": boosterIncrement,
	"intensely": boosterIncrement, "particularly": boosterIncrement, "quite": boosterIncrement,
	"really": boosterIncrement, "remarkably": boosterIncrement, "so": boosterIncrement,
	"super": boosterIncrement, "thoroughly": boosterIncrement, "totally": boosterIncrement,
	"tremendously": boosterIncrement, "truly": boosterIncrement, "utterly": boosterIncrement,
	"very": boosterIncrement, "most": boosterIncrement, "more": boosterIncrement,
	"almost": -boosterIncrement, "barely": -boosterIncrement, "hardly": -boosterIncrement,
	"kinda": -boosterIncrement, "less": -boosterIncrement, "little": -boosterIncrement,
	"marginally": -boosterIncrement, "occasionally": -boosterIncrement, "partly": -boosterIncrement,
	"scarcely": -boosterIncrement, "slightly": -boosterIncrement, "somewhat": -boosterIncrement,
}

// negations flip the polarity of the words that follow them.
var negations = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "none": {}, "nobody": {}, "nothing": {},
	"neither": {}, "nor": {}, "nowhere": {}, "cannot": {}, "without": {},
	"aint": {}, "dont": {}, "doesnt": {}, "didnt": {}, "isnt": {}, "arent": {},
	"wasnt": {}, "werent": {}, "cant": {}, "couldnt": {}, "wont": {},
	"wouldnt": {}, "shouldnt": {}, "hasnt": {}, "havent": {}, "hadnt": {},
}
