package usecase

import "strings"

const fillerBullet = "Developed software solutions following industry best practices"

var bulletTemplates = []struct {
	keywords []string
	bullets  []string
}{
	{
		keywords: []string{"backend", "api", "microservice", "server"},
		bullets: []string{
			"Designed and implemented RESTful APIs serving production traffic",
			"Built backend services with focus on reliability and performance",
			"Worked with databases and caching layers to optimize data access",
		},
	},
	{
		keywords: []string{"frontend", "react", "angular", "vue", "ui"},
		bullets: []string{
			"Developed responsive user interfaces with modern frontend frameworks",
			"Implemented reusable UI components improving development velocity",
			"Collaborated with designers to deliver pixel-accurate user experiences",
		},
	},
	{
		keywords: []string{"full stack", "fullstack", "full-stack"},
		bullets: []string{
			"Built end-to-end features spanning frontend interfaces and backend services",
			"Designed database schemas and APIs consumed by web applications",
			"Delivered complete product features from design to deployment",
		},
	},
	{
		keywords: []string{"data", "analytics", "machine learning", "ml", "ai"},
		bullets: []string{
			"Built data pipelines processing structured and unstructured datasets",
			"Developed analytical models to extract insights from business data",
			"Created dashboards and reports enabling data-driven decisions",
		},
	},
	{
		keywords: []string{"devops", "cloud", "aws", "kubernetes", "docker", "ci/cd"},
		bullets: []string{
			"Automated deployment pipelines reducing release cycle time",
			"Managed cloud infrastructure with focus on cost and reliability",
			"Implemented monitoring and alerting for production systems",
		},
	},
	{
		keywords: []string{"qa", "test", "quality"},
		bullets: []string{
			"Designed comprehensive test suites improving release confidence",
			"Automated regression testing reducing manual verification effort",
			"Collaborated with developers to identify and resolve defects early",
		},
	},
}

var genericBullets = []string{
	"Developed and maintained software applications using modern technologies",
	"Collaborated in agile teams to deliver features on schedule",
	"Participated in code reviews and contributed to engineering best practices",
}

// ResumeBullets returns exactly three tailoring suggestions. Provider
// bullets win when at least three were supplied; otherwise keyword
// templates are chosen from the posting text, padded if short.
func ResumeBullets(jdText string, providerBullets []string) []string {
	if len(providerBullets) >= 3 {
		return providerBullets[:3]
	}
	lower := strings.ToLower(jdText)
	bullets := genericBullets
	for _, tpl := range bulletTemplates {
		matched := false
		for _, kw := range tpl.keywords {
			if strings.Contains(lower, kw) {
				matched = true
				break
			}
		}
		if matched {
			bullets = tpl.bullets
			break
		}
	}
	out := make([]string, 0, 3)
	out = append(out, bullets...)
	for len(out) < 3 {
		out = append(out, fillerBullet)
	}
	return out[:3]
}
