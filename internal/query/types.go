package query

// RoleHint qualifies how an extracted entity should be searched when a
// recognized relationship pattern matched the utterance.
type RoleHint int

const (
	RoleNone RoleHint = iota
	RoleCEO
	RolePresident
	RolePrimeMinister
	RoleCapital
	RoleFounder
)

func (r RoleHint) String() string {
	switch r {
	case RoleCEO:
		return "ceo"
	case RolePresident:
		return "president"
	case RolePrimeMinister:
		return "prime_minister"
	case RoleCapital:
		return "capital"
	case RoleFounder:
		return "founder"
	default:
		return "none"
	}
}

// EntitySource records where an extracted entity came from.
type EntitySource int

const (
	SourceQueryPattern EntitySource = iota
	SourcePriorResponse
)

// ExtractedEntity is a candidate topic string pulled out of an utterance
// or a previously rendered response. Request-scoped, never persisted.
type ExtractedEntity struct {
	Surface string
	Source  EntitySource
}

// Aspect names the facet of a known topic a follow-up question asks about.
type Aspect int

const (
	AspectNone Aspect = iota
	AspectEducation
	AspectPolitics
	AspectBirthplace
	AspectCareer
	AspectGeneral
)

func (a Aspect) String() string {
	switch a {
	case AspectEducation:
		return "education"
	case AspectPolitics:
		return "politics"
	case AspectBirthplace:
		return "birthplace"
	case AspectCareer:
		return "career"
	case AspectGeneral:
		return "general"
	default:
		return "none"
	}
}

// Intent is the classified shape of one utterance. Role is set only when a
// recognized role pattern matched; Entity only when a pattern matched or a
// follow-up resolved against the remembered topic.
type Intent struct {
	RawText    string
	Normalized string
	IsFollowUp bool
	Entity     *ExtractedEntity
	Role       RoleHint
}

// Plan is the ordered list of provider queries the resolver should try,
// plus the context the resolver and formatter need to judge candidates.
type Plan struct {
	Queries []string
	Role    RoleHint
	Entity  string
	Aspect  Aspect
	Topic   string
}
