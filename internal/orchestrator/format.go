package orchestrator

import (
	"fmt"
	"math"
	"strings"

	"finmitra-backend/internal/models"
)

// FormatINR renders a rupee amount with Indian digit grouping:
// 1234567 -> ₹12,34,567. Paise are dropped; reports round to the rupee.
func FormatINR(amount float64) string {
	n := int64(math.Round(amount))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return "₹" + sign + s
	}
	head, tail := s[:len(s)-3], s[len(s)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return "₹" + sign + strings.Join(groups, ",") + "," + tail
}

// label returns the localized label for a report line, falling back to
// English.
func label(lang models.Language, key string) string {
	if m, ok := labels[lang]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	return labels[models.LangEnglish][key]
}

var labels = map[models.Language]map[string]string{
	models.LangEnglish: {
		"elig_title":      "Loan Eligibility Report",
		"resil_title":     "Financial Resilience Report",
		"probability":     "Approval probability",
		"score":           "Resilience score",
		"risk":            "Risk category",
		"emi":             "Estimated EMI",
		"dti":             "Debt-to-income",
		"surplus":         "Monthly surplus after EMI",
		"verdict":         "Verdict",
		"survival":        "Worst-case runway",
		"months":          "months",
		"scenarios":       "Stress scenarios",
		"risk_factors":    "Risk factors",
		"recommendations": "Recommendations",
		"emi_title":       "EMI Calculation",
		"principal":       "Loan amount",
		"rate":            "Interest rate",
		"tenure":          "Tenure",
		"total_payable":   "Total payable",
		"total_interest":  "Total interest",
		"cancelled":       "Okay, I've cancelled that check. Ask me anything else whenever you're ready.",
		"goodbye":         "Goodbye! Come back anytime you have a money question.",
	},
	models.LangHindi: {
		"elig_title":      "ऋण पात्रता रिपोर्ट",
		"resil_title":     "वित्तीय लचीलापन रिपोर्ट",
		"probability":     "स्वीकृति की संभावना",
		"score":           "लचीलापन स्कोर",
		"risk":            "जोखिम श्रेणी",
		"emi":             "अनुमानित EMI",
		"dti":             "ऋण-आय अनुपात",
		"surplus":         "EMI के बाद मासिक बचत",
		"verdict":         "निष्कर्ष",
		"survival":        "सबसे खराब स्थिति में समय",
		"months":          "महीने",
		"scenarios":       "तनाव परिदृश्य",
		"risk_factors":    "जोखिम कारक",
		"recommendations": "सुझाव",
		"emi_title":       "EMI गणना",
		"principal":       "ऋण राशि",
		"rate":            "ब्याज दर",
		"tenure":          "अवधि",
		"total_payable":   "कुल देय",
		"total_interest":  "कुल ब्याज",
		"cancelled":       "ठीक है, मैंने वह जाँच रद्द कर दी है। जब चाहें कुछ और पूछें।",
		"goodbye":         "अलविदा! पैसों से जुड़ा कोई भी सवाल हो तो फिर आइए।",
	},
	models.LangTamil: {
		"elig_title":      "கடன் தகுதி அறிக்கை",
		"resil_title":     "நிதி நெகிழ்வுத்திறன் அறிக்கை",
		"probability":     "ஒப்புதல் வாய்ப்பு",
		"score":           "நெகிழ்வுத்திறன் மதிப்பெண்",
		"risk":            "அபாய வகை",
		"emi":             "மதிப்பிடப்பட்ட EMI",
		"dti":             "கடன்-வருமான விகிதம்",
		"surplus":         "EMI க்குப் பிறகு மாத மிச்சம்",
		"verdict":         "முடிவு",
		"survival":        "மோசமான நிலையில் காலம்",
		"months":          "மாதங்கள்",
		"scenarios":       "அழுத்தச் சூழல்கள்",
		"risk_factors":    "அபாயக் காரணிகள்",
		"recommendations": "பரிந்துரைகள்",
		"emi_title":       "EMI கணக்கீடு",
		"principal":       "கடன் தொகை",
		"rate":            "வட்டி விகிதம்",
		"tenure":          "காலம்",
		"total_payable":   "மொத்தச் செலுத்த வேண்டியது",
		"total_interest":  "மொத்த வட்டி",
		"cancelled":       "சரி, அந்தச் சரிபார்ப்பை ரத்து செய்துவிட்டேன். வேறு எதுவும் கேளுங்கள்.",
		"goodbye":         "நன்றி! பணம் தொடர்பான கேள்வி இருந்தால் மீண்டும் வாருங்கள்.",
	},
}

var scenarioNames = map[models.StressScenario]string{
	models.ScenarioJobLoss:          "Job loss",
	models.ScenarioMedicalEmergency: "Medical emergency",
	models.ScenarioMarketCrash:      "Market crash",
	models.ScenarioInflationSurge:   "Inflation surge",
	models.ScenarioCombined:         "Combined shock",
}

func formatEMIReply(lang models.Language, principal, annualRate float64, months int, emi float64) string {
	total := emi * float64(months)
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", label(lang, "emi_title"))
	fmt.Fprintf(&b, "%s: %s\n", label(lang, "principal"), FormatINR(principal))
	fmt.Fprintf(&b, "%s: %.1f%%\n", label(lang, "rate"), annualRate)
	fmt.Fprintf(&b, "%s: %d %s\n", label(lang, "tenure"), months, label(lang, "months"))
	fmt.Fprintf(&b, "%s: %s\n", label(lang, "emi"), FormatINR(emi))
	fmt.Fprintf(&b, "%s: %s\n", label(lang, "total_payable"), FormatINR(total))
	fmt.Fprintf(&b, "%s: %s", label(lang, "total_interest"), FormatINR(total-principal))
	return b.String()
}

func formatEligibilityReport(lang models.Language, rep models.EligibilityReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", label(lang, "elig_title"))
	fmt.Fprintf(&b, "%s: %d%%\n", label(lang, "probability"), rep.Probability)
	fmt.Fprintf(&b, "%s: %s\n", label(lang, "risk"), rep.RiskCategory)
	fmt.Fprintf(&b, "%s: %s\n", label(lang, "emi"), FormatINR(rep.EMI))
	fmt.Fprintf(&b, "%s: %.1f%%\n", label(lang, "dti"), rep.DTIPercent)
	fmt.Fprintf(&b, "%s: %s\n", label(lang, "surplus"), FormatINR(rep.MonthlySurplus))
	fmt.Fprintf(&b, "%s: %s\n", label(lang, "verdict"), rep.Verdict)
	writeList(&b, label(lang, "risk_factors"), rep.RiskFactors)
	writeList(&b, label(lang, "recommendations"), rep.Recommendations)
	return strings.TrimRight(b.String(), "\n")
}

func formatResilienceReport(lang models.Language, rep models.ResilienceReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", label(lang, "resil_title"))
	fmt.Fprintf(&b, "%s: %d/100\n", label(lang, "score"), rep.Score)
	fmt.Fprintf(&b, "%s: %s\n", label(lang, "risk"), rep.RiskCategory)
	fmt.Fprintf(&b, "%s: %d %s\n", label(lang, "survival"), rep.SurvivalMonths, label(lang, "months"))
	fmt.Fprintf(&b, "\n%s:\n", label(lang, "scenarios"))
	for _, sc := range rep.Scenarios {
		fmt.Fprintf(&b, "- %s: %d %s (%s)\n", scenarioNames[sc.Scenario], sc.SurvivalMonths, label(lang, "months"), sc.Impact)
	}
	writeList(&b, label(lang, "risk_factors"), rep.RiskFactors)
	writeList(&b, label(lang, "recommendations"), rep.Recommendations)
	return strings.TrimRight(b.String(), "\n")
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", title)
	for _, it := range items {
		fmt.Fprintf(b, "- %s\n", it)
	}
}
