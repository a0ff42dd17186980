package config

import (
	"regexp"
	"time"

	"github.com/yasi76/namesift/internal/logger"
)

// Default heuristic values tuned on German/English digital-health company
// sites. Everything here can be overridden per run via namesift.yaml.

const (
	defaultMergeThreshold       = 0.85
	defaultDuplicateThreshold   = 0.95
	defaultGroundTruthThreshold = 0.75

	defaultMinLength = 2
	defaultMaxLength = 60
	defaultMaxWords  = 4

	defaultFetchTimeout = 15 * time.Second
	defaultMaxBodyBytes = 256 * 1024
	defaultRatePerHost  = 2.0
	defaultRateBurst    = 4
	defaultUserAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 namesift/1.0"

	defaultPoolSize   = 8
	defaultJobTimeout = 30 * time.Second
)

// mustPattern compiles a case-insensitive junk pattern at init time.
func mustPattern(name, expr string) NamedPattern {
	return NamedPattern{Name: name, Pattern: regexp.MustCompile("(?i)" + expr)}
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logger: loggerDefaults(),
		Fetch: Fetch{
			Timeout:      defaultFetchTimeout,
			UserAgent:    defaultUserAgent,
			MaxBodyBytes: defaultMaxBodyBytes,
			RatePerHost:  defaultRatePerHost,
			RateBurst:    defaultRateBurst,
		},
		Workers: Workers{
			PoolSize:   defaultPoolSize,
			JobTimeout: defaultJobTimeout,
		},
		Pipeline: Pipeline{
			MergeThreshold:       defaultMergeThreshold,
			DuplicateThreshold:   defaultDuplicateThreshold,
			GroundTruthThreshold: defaultGroundTruthThreshold,
			MinLength:            defaultMinLength,
			MaxLength:            defaultMaxLength,
			MaxWords:             defaultMaxWords,
			EntityKeywords:       defaultEntityKeywords(),
			Stopwords:            defaultStopwords(),
			JunkPatterns:         defaultJunkPatterns(),
			GenericPhrases:       defaultGenericPhrases(),
			PlatformNames:        defaultPlatformNames(),
			DomainOverrides:      map[string]string{},
		},
	}
}

// defaultEntityKeywords is the vocabulary that marks a candidate as naming a
// product or offering rather than a slogan. English and German forms.
func defaultEntityKeywords() []string {
	return []string{
		"app", "apps", "application", "anwendung",
		"platform", "plattform",
		"device", "gerät",
		"service", "dienst",
		"assistant", "assistent",
		"coach",
		"kit", "set",
		"tool", "werkzeug",
		"system",
		"software",
		"solution", "lösung",
		"suite", "module", "modul",
		"monitor", "tracker",
		"product", "produkt",
	}
}

// defaultStopwords holds small function-word sets per language; a candidate
// made only of these carries no entity signal.
func defaultStopwords() map[string][]string {
	return map[string][]string{
		"en": {
			"a", "an", "the", "and", "or", "but", "for", "with", "your",
			"our", "my", "their", "this", "that", "these", "those", "is",
			"are", "was", "were", "be", "been", "to", "of", "in", "on",
			"at", "by", "from", "as", "it", "its", "we", "you", "all",
			"more", "most", "very", "can", "will", "now", "new",
		},
		"de": {
			"der", "die", "das", "ein", "eine", "einer", "eines", "und",
			"oder", "aber", "für", "mit", "ihr", "ihre", "unser", "unsere",
			"mein", "meine", "dies", "diese", "dieser", "ist", "sind",
			"war", "waren", "sein", "zu", "von", "im", "in", "auf", "an",
			"bei", "aus", "als", "es", "wir", "sie", "alle", "mehr",
			"sehr", "kann", "wird", "jetzt", "neu",
		},
	}
}

// defaultJunkPatterns rejects navigation chrome and marketing taglines.
// Each stage is named so a rejection can be traced in debug logs and the
// per-stage counters of the batch report.
func defaultJunkPatterns() []NamedPattern {
	return []NamedPattern{
		mustPattern("generic_nav",
			`^(home|start|startseite|menu|menü|about( us)?|über uns|contact|kontakt|`+
				`products?|produkte|services?|leistungen|solutions?|lösungen|news|blog|team|`+
				`press|presse|karriere|careers?|jobs|faq|impressum|datenschutz|privacy( policy)?|`+
				`terms|agb|login|log ?in|sign ?(in|up)|register|logout|search|suche|downloads?|`+
				`mehr( erfahren)?|more|back|zurück|next|weiter|cookie[s]?( settings)?)$`),
		mustPattern("question_opener",
			`^(how|why|when|where|what|who|wie|warum|wann|wo|was|wer)\b`),
		mustPattern("imperative_verb",
			`^(get|build|create|make|start|join|discover|explore|learn|find|connect|`+
				`transform|unlock|try|use|begin|launch|run|deploy|book|request|accept|decline|`+
				`entdecke[n]?|erfahre[n]?|starte[n]?|teste[n]?|buche[n]?|vereinbare[n]?)\b`),
		mustPattern("verb_lead",
			`^(fits|works|helps|makes|brings|keeps|gets|takes|gives|turns|feels|looks|`+
				`meets|puts|lets|saves|passt|hilft|macht|bringt|spart)\b`),
		mustPattern("marketing_intro",
			`^(introducing|announcing|welcome( to)?|experience|willkommen( bei)?)\b`),
		mustPattern("possessive_way",
			`\b(your|our|the|dein[e]?|unser[e]?|ihr[e]?)\s+(way|solution|choice|future|`+
				`journey|weg|zukunft|wahl)$`),
		mustPattern("made_by",
			`^(powered by|built with|designed for|made (for|in)|created by|entwickelt (von|für))\b`),
		mustPattern("benefit_blurb",
			`\b(better|faster|easier|smarter|stronger|einfacher|schneller|besser)\b.*\b(life|`+
				`health|care|work|leben|gesundheit|pflege|arbeit)\b`),
	}
}

// defaultGenericPhrases are exact candidate texts too generic to be names,
// across the languages the corpus covers.
func defaultGenericPhrases() []string {
	return []string{
		"our app", "the app", "this app", "your app", "my app",
		"our platform", "the platform", "our solution", "your solution",
		"our product", "our products", "our services", "our service",
		"die app", "unsere app", "deine app", "die plattform",
		"unsere plattform", "unsere lösung", "unser produkt",
		"unsere produkte", "unser service",
		"notre solution", "notre application",
	}
}

// defaultPlatformNames are hosting and CMS vendors whose names leak into
// titles and metadata of sites built on them.
func defaultPlatformNames() []string {
	return []string{
		"wordpress", "wix", "wix.com", "squarespace", "shopify", "jimdo",
		"webflow", "weebly", "typo3", "joomla", "drupal", "hubspot",
		"godaddy", "strato", "ionos", "1&1", "google sites",
	}
}

func loggerDefaults() logger.Config {
	return logger.Config{
		Level:    logger.InfoLevel,
		Encoding: "console",
	}
}
