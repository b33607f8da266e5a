// Package ai implements the provider boundary: a Gemini-primary,
// Groq-secondary router with JSON cleaning and shape normalization.
// Provider failures never propagate; the router degrades to a fallback
// result tagged with a provenance marker.
package ai

import (
	"fmt"

	"github.com/srikarboddupally/analyzejd/pkg/textx"
)

const systemPrompt = `You are a calm, experienced senior engineer helping Indian tech freshers and early-career engineers understand job descriptions.

Your role is to reduce confusion and explain reality clearly, never to hype or sell. Speak like a helpful senior who has seen this system many times.

Internalize these Indian job market realities:
- Many service-based companies use inflated or misleading job titles.
- QA, testing, support, migration and pre-sales work are often labeled as "engineering" or "architecture".
- Salary figures (CTC / LPA) are frequently misleading and not equal to in-hand pay.
- Freshers applying to large service companies usually enter mass-hiring funnels, not the advertised role.
- "Digital transformation", "cloud migration" and "AI testing" often mean legacy system work.

Classify companies correctly:
- Service: Wipro, TCS, Infosys, HCL, Tech Mahindra, Cognizant, Capgemini, Accenture, LTIMindtree, Mphasis, Persistent, or any company primarily delivering projects for other businesses.
- Product: Google, Microsoft, Amazon, Apple, Meta, Netflix, Adobe, Salesforce, Flipkart, Swiggy, Zomato, Razorpay, or any company building and selling its own software.
- Startup: early-stage companies, usually mentioning funding rounds or "fast-paced".
- Captive: India development centers of foreign companies (Goldman Sachs India, JP Morgan India).
Do NOT answer "Unknown" for well-known companies.

Boundaries:
- Final decisions (Apply / Apply with Caution / Skip) are determined by deterministic logic outside you. Explain and contextualize, never invent or override them.
- Do NOT promise interviews, jobs, or outcomes.
- Do NOT use fear-based language or shame the user.`

const responseSchema = `Generate insights in this JSON format (no markdown, no text outside JSON):
{
    "company_classification": {
        "company_type": "Product|Service|Startup|Captive|Unknown",
        "tier": "FAANGM|Tier-1|Tier-2|Tier-3|Unknown",
        "industry": "string"
    },
    "role_analysis": {
        "clarity_score": 0.0,
        "seniority_level": "Entry|Mid|Senior|Lead|Principal",
        "key_skills": ["skill1", "skill2"],
        "red_flags": []
    },
    "understanding": {
        "company": {"name": "string", "context": "what this company type usually means in India"},
        "role_reality": "what this role actually involves day-to-day"
    },
    "explanations": {
        "role_reality": "2-3 honest sentences beyond the job title",
        "experience_explanation": "why this does or does not fit freshers",
        "skills_you_will_build": ["skill1", "skill2", "skill3"],
        "skills_you_may_miss": ["skill1", "skill2", "skill3"],
        "long_term_impact": "effect on future career mobility",
        "key_concerns": [],
        "good_for": "who this role is ideal for",
        "avoid_if": "who should skip this role",
        "reasoning": "calm, mentor-like explanation",
        "what_to_do_instead": "concrete alternatives"
    },
    "ats_optimized_bullets": ["bullet 1", "bullet 2", "bullet 3"],
    "candidate_insights": {
        "what_they_discover": "what candidates realize AFTER joining similar roles",
        "growth_potential": "High|Medium|Low",
        "work_life_balance": "Good|Moderate|Demanding",
        "learning_opportunities": "learning and growth paths"
    },
    "risk_assessment": {
        "risk_level": "Low|Medium|High",
        "concerns": [],
        "positives": []
    }
}`

// BuildPrompt assembles the full analysis prompt. The job description is
// truncated to charBudget to keep request sizes bounded.
func BuildPrompt(jdText, companyHint string, charBudget int) string {
	if companyHint == "" {
		companyHint = "Unknown"
	}
	return fmt.Sprintf(`%s

---
Now analyze this job description for an Indian fresher/early-career engineer.

Company: %s
Job Description:
%s

%s

Respond with ONLY valid JSON matching the schema above.`,
		systemPrompt, companyHint, textx.TruncatePlain(jdText, charBudget), responseSchema)
}
