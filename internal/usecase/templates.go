package usecase

import (
	"strings"

	"github.com/srikarboddupally/analyzejd/internal/domain"
)

// Template fallbacks keyed by company type, used whenever the provider did
// not supply an explanation. One entry per type plus the Unknown default.

var companyContext = map[domain.CompanyType]string{
	domain.CompanyProduct: "Product companies build and sell their own software. Engineers typically work on " +
		"core product features, have more ownership, and see direct impact of their work. " +
		"Career growth often depends on technical depth and product impact.",
	domain.CompanyService: "Service companies deliver projects for other businesses. Work varies by client " +
		"assignment—you may work on different technologies across projects. Career growth " +
		"often involves client management and broader exposure, but less depth in any single domain.",
	domain.CompanyStartup: "Startups are early-stage companies with high uncertainty but potentially high reward. " +
		"Expect fast pace, broad responsibilities, and less structure. Good for learning quickly, " +
		"but job security and mentorship may be limited.",
	domain.CompanyCaptive: "Captive centers are offshore R&D units of foreign companies. Work is often stable " +
		"and well-structured, but you may be distant from core business decisions. " +
		"Good for work-life balance; growth depends on parent company culture.",
	domain.CompanyUnknown: "Unable to determine company type from the job description. Research the company " +
		"independently—check LinkedIn, Glassdoor, and speak to current employees before applying.",
}

// CompanyContext returns the context paragraph for a company type.
func CompanyContext(t domain.CompanyType) string {
	if s, ok := companyContext[t]; ok {
		return s
	}
	return companyContext[domain.CompanyUnknown]
}

type careerTemplate struct {
	build   []string
	miss    []string
	longRun string
}

var careerTemplates = map[domain.CompanyType]careerTemplate{
	domain.CompanyProduct: {
		build: []string{
			"Deep product thinking and user empathy",
			"Ownership of features end-to-end",
			"Technical depth in specific domains",
		},
		miss: []string{
			"Client-facing communication",
			"Broad technology exposure",
			"Project management across contexts",
		},
		longRun: "Strong foundation for product engineering roles. Easier transitions " +
			"to other product companies or startups. May require deliberate effort " +
			"to broaden technology stack.",
	},
	domain.CompanyService: {
		build: []string{
			"Adaptability across different projects",
			"Client communication and requirements gathering",
			"Exposure to diverse technologies",
		},
		miss: []string{
			"Deep ownership of a single product",
			"Long-term architectural decisions",
			"Direct user feedback loops",
		},
		longRun: "Broad exposure but potentially shallow depth. Transitioning to product " +
			"companies later may require demonstrating depth through side projects " +
			"or open source contributions.",
	},
	domain.CompanyStartup: {
		build: []string{
			"End-to-end ownership and scrappiness",
			"Fast learning and adaptability",
			"Wearing multiple hats (dev, ops, sometimes PM)",
		},
		miss: []string{
			"Structured mentorship and code review culture",
			"Large-scale system design experience",
			"Process-driven engineering practices",
		},
		longRun: "Great for learning quickly and building a broad skill set. May need to " +
			"seek structured environments later to deepen specific expertise. " +
			"Startup experience is valued but stability matters too.",
	},
	domain.CompanyCaptive: {
		build: []string{
			"Structured engineering practices",
			"Collaboration with global teams",
			"Domain expertise in parent company's area",
		},
		miss: []string{
			"Product ownership and roadmap influence",
			"Startup-style scrappiness",
			"Local market understanding",
		},
		longRun: "Stable career path with good work-life balance. Growth depends on " +
			"parent company's investment in the India center. May feel distant " +
			"from core business decisions.",
	},
	domain.CompanyUnknown: {
		build: []string{"Unable to determine without more context"},
		miss:  []string{"Unable to determine without more context"},
		longRun: "Research the company independently before making a decision. " +
			"Understanding the company type is important for career planning.",
	},
}

// CareerImplicationsFor returns the template career implications for a type.
func CareerImplicationsFor(t domain.CompanyType) domain.CareerImplications {
	tpl, ok := careerTemplates[t]
	if !ok {
		tpl = careerTemplates[domain.CompanyUnknown]
	}
	return domain.CareerImplications{
		SkillsYouWillBuild: tpl.build,
		SkillsYouMayMiss:   tpl.miss,
		LongTermImpact:     tpl.longRun,
	}
}

// RoleReality produces a plain-language explanation of what the role
// actually involves, keyed off role-pattern keywords in the posting.
func RoleReality(jdText string, companyType domain.CompanyType, risks []string) string {
	lower := strings.ToLower(jdText)
	has := func(kws ...string) bool {
		for _, kw := range kws {
			if strings.Contains(lower, kw) {
				return true
			}
		}
		return false
	}
	switch {
	case has("qa", "quality assurance", "testing", "test automation"):
		return "This role focuses on quality assurance and testing rather than core development. " +
			"Day-to-day work likely involves writing test cases, automation scripts, and " +
			"coordinating with development teams. If you want to build products, this may " +
			"not be the right path."
	case has("support", "l1", "l2", "incident", "helpdesk"):
		return "This is primarily a support or operations role. Expect to handle tickets, " +
			"troubleshoot issues, and work in shifts. Technical learning may be limited " +
			"to the systems you support. Not ideal if you want to build new things."
	case has("migration", "legacy", "modernization", "transformation"):
		return "This role involves migrating or maintaining existing systems rather than " +
			"building new features. Work may feel repetitive and focused on legacy code. " +
			"Good for stability but may limit exposure to modern architectures."
	case has("consultant", "advisory", "pre-sales"):
		return "This is a client-facing consulting role. Expect presentations, requirement " +
			"gathering, and project coordination. Less hands-on coding than engineering roles. " +
			"Good if you enjoy communication; less ideal for deep technical growth."
	case companyType == domain.CompanyService && len(risks) > 0:
		return "This appears to be a client-delivery role where your work depends on project " +
			"allocation. Actual responsibilities may differ from what's advertised. " +
			"Clarify the specific project and tech stack during interviews."
	case companyType == domain.CompanyProduct:
		return "This role involves working on the company's own product. Expect ownership " +
			"of features, collaboration with product teams, and visible impact. " +
			"Good environment for engineering depth and product thinking."
	default:
		return "Based on the job description, this appears to be a general engineering role. " +
			"Clarify specific responsibilities, team structure, and projects during the " +
			"interview process to understand what you'll actually be doing."
	}
}

var goodForTemplates = map[domain.CompanyType]string{
	domain.CompanyProduct: "Engineers who want deep ownership, product impact, and technical depth.",
	domain.CompanyService: "Engineers comfortable with client work and seeking diverse project exposure.",
	domain.CompanyStartup: "Self-starters who thrive in ambiguity and want to learn fast.",
	domain.CompanyCaptive: "Engineers seeking stability, global exposure, and work-life balance.",
	domain.CompanyUnknown: "Unclear without more information about the company.",
}

var avoidIfTemplates = map[domain.CompanyType]string{
	domain.CompanyProduct: "You prefer variety across projects or want broad technology exposure.",
	domain.CompanyService: "You want deep product ownership or dislike project-based assignments.",
	domain.CompanyStartup: "You need structured mentorship or job security is a priority.",
	domain.CompanyCaptive: "You want to influence product direction or prefer fast-moving environments.",
	domain.CompanyUnknown: "You are risk-averse and prefer clarity before committing.",
}

// GoodFor returns the template answer for who the role suits.
func GoodFor(t domain.CompanyType) string {
	if s, ok := goodForTemplates[t]; ok {
		return s
	}
	return goodForTemplates[domain.CompanyUnknown]
}

// AvoidIf returns the template answer for who should skip the role.
func AvoidIf(t domain.CompanyType) string {
	if s, ok := avoidIfTemplates[t]; ok {
		return s
	}
	return avoidIfTemplates[domain.CompanyUnknown]
}

// FresherExplanation is the template explanation for an alignment value.
func FresherExplanation(alignment domain.FresherAlignment) string {
	switch alignment {
	case domain.AlignmentGood:
		return "This role appears suitable for freshers or early-career engineers. " +
			"The experience requirements and role type suggest a reasonable starting point."
	case domain.AlignmentPoor:
		return "This role targets more experienced professionals. As a fresher, you may " +
			"struggle to meet expectations or miss out on proper mentorship. Consider " +
			"roles explicitly designed for early-career engineers."
	default:
		return "The experience requirements are unclear. Research the role further and " +
			"ask directly about the expected experience level during the application process."
	}
}
