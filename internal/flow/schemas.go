package flow

import (
	"finmitra-backend/internal/extract"
	"finmitra-backend/internal/models"
)

// EligibilitySchema asks the seven loan-eligibility fields in fixed order.
func EligibilitySchema() Schema {
	return Schema{
		Kind:    KindEligibility,
		Extract: extract.Eligibility,
		Fields: []FieldSpec{
			{
				ID: models.FieldMonthlyIncome,
				Prompt: map[models.Language]string{
					models.LangEnglish: "What is your monthly income (in ₹)?",
					models.LangHindi:   "आपकी मासिक आय कितनी है (₹ में)?",
					models.LangTamil:   "உங்கள் மாத வருமானம் எவ்வளவு (₹)?",
				},
				Hint: map[models.Language]string{
					models.LangEnglish: "Please share a monthly amount of at least ₹5,000, e.g. 50000 or 1.2 lakh.",
					models.LangHindi:   "कृपया ₹5,000 या अधिक की मासिक राशि बताएं, जैसे 50000 या 1.2 लाख।",
					models.LangTamil:   "₹5,000 அல்லது அதற்கு மேல் மாத தொகையை சொல்லுங்கள், எ.கா. 50000.",
				},
			},
			{
				ID: models.FieldLoanAmount,
				Prompt: map[models.Language]string{
					models.LangEnglish: "How much loan do you need (in ₹)?",
					models.LangHindi:   "आपको कितने का लोन चाहिए (₹ में)?",
					models.LangTamil:   "உங்களுக்கு எவ்வளவு கடன் தேவை (₹)?",
				},
				Hint: map[models.Language]string{
					models.LangEnglish: "Please give an amount between ₹10,000 and ₹10 crore, e.g. 3 lakh.",
					models.LangHindi:   "कृपया ₹10,000 से ₹10 करोड़ के बीच की राशि बताएं, जैसे 3 लाख।",
					models.LangTamil:   "₹10,000 முதல் ₹10 கோடி வரை ஒரு தொகையை சொல்லுங்கள்.",
				},
			},
			{
				ID: models.FieldCreditScore,
				Prompt: map[models.Language]string{
					models.LangEnglish: "What is your CIBIL / credit score? (If unsure, a rough number works.)",
					models.LangHindi:   "आपका CIBIL / क्रेडिट स्कोर क्या है? (अंदाज़न भी चलेगा।)",
					models.LangTamil:   "உங்கள் CIBIL / கடன் மதிப்பெண் என்ன?",
				},
				Hint: map[models.Language]string{
					models.LangEnglish: "A credit score is a number between 300 and 900, e.g. 720.",
					models.LangHindi:   "क्रेडिट स्कोर 300 से 900 के बीच की संख्या है, जैसे 720।",
					models.LangTamil:   "கடன் மதிப்பெண் 300 முதல் 900 வரை, எ.கா. 720.",
				},
			},
			{
				ID: models.FieldExistingLoans,
				Prompt: map[models.Language]string{
					models.LangEnglish: "How many existing loans or EMIs are you currently paying?",
					models.LangHindi:   "आप अभी कितने लोन या EMI चुका रहे हैं?",
					models.LangTamil:   "தற்போது எத்தனை கடன்கள் / EMI கட்டுகிறீர்கள்?",
				},
				Hint: map[models.Language]string{
					models.LangEnglish: "Please answer with a count from 0 to 10, e.g. 0 or 2.",
					models.LangHindi:   "कृपया 0 से 10 के बीच संख्या बताएं, जैसे 0 या 2।",
					models.LangTamil:   "0 முதல் 10 வரை எண்ணாக சொல்லுங்கள்.",
				},
			},
			{
				ID: models.FieldJobType,
				Prompt: map[models.Language]string{
					models.LangEnglish: "What is your employment type — salaried, self-employed, business, or unemployed?",
					models.LangHindi:   "आपका रोज़गार किस प्रकार का है — नौकरीपेशा, स्व-रोज़गार, व्यवसाय, या बेरोज़गार?",
					models.LangTamil:   "உங்கள் வேலை வகை — சம்பளம், சுய தொழில், வணிகம், அல்லது வேலையில்லை?",
				},
				Hint: map[models.Language]string{
					models.LangEnglish: "Please pick one of: salaried, self-employed, business, unemployed.",
					models.LangHindi:   "कृपया इनमें से चुनें: नौकरीपेशा, स्व-रोज़गार, व्यवसाय, बेरोज़गार।",
					models.LangTamil:   "இவற்றில் ஒன்றை தேர்வு செய்யுங்கள்: சம்பளம், சுய தொழில், வணிகம், வேலையில்லை.",
				},
			},
			{
				ID: models.FieldAge,
				Prompt: map[models.Language]string{
					models.LangEnglish: "What is your age?",
					models.LangHindi:   "आपकी उम्र क्या है?",
					models.LangTamil:   "உங்கள் வயது என்ன?",
				},
				Hint: map[models.Language]string{
					models.LangEnglish: "Lenders serve applicants aged 18 to 75; please share a number in that range.",
					models.LangHindi:   "कृपया 18 से 75 के बीच उम्र बताएं।",
					models.LangTamil:   "18 முதல் 75 வரை வயதை சொல்லுங்கள்.",
				},
			},
			{
				ID: models.FieldLoanTenure,
				Prompt: map[models.Language]string{
					models.LangEnglish: "Over how many months would you like to repay? (e.g. 36, or say 5 years)",
					models.LangHindi:   "आप कितने महीनों में चुकाना चाहेंगे? (जैसे 36, या 5 साल)",
					models.LangTamil:   "எத்தனை மாதங்களில் திருப்பி செலுத்த விரும்புகிறீர்கள்? (எ.கா. 36)",
				},
				Hint: map[models.Language]string{
					models.LangEnglish: "Tenure should be between 6 and 360 months.",
					models.LangHindi:   "अवधि 6 से 360 महीनों के बीच होनी चाहिए।",
					models.LangTamil:   "காலம் 6 முதல் 360 மாதங்கள் வரை இருக்க வேண்டும்.",
				},
			},
		},
	}
}

// ResilienceSchema asks the eight financial-resilience fields in fixed order.
func ResilienceSchema() Schema {
	return Schema{
		Kind:    KindResilience,
		Extract: extract.Resilience,
		Fields: []FieldSpec{
			{
				ID: models.FieldMonthlyIncome,
				Prompt: map[models.Language]string{
					models.LangEnglish: "What is your monthly income (in ₹)?",
					models.LangHindi:   "आपकी मासिक आय कितनी है (₹ में)?",
					models.LangTamil:   "உங்கள் மாத வருமானம் எவ்வளவு (₹)?",
				},
				Hint: map[models.Language]string{
					models.LangEnglish: "Please share a monthly amount of at least ₹5,000, e.g. 50000.",
					models.LangHindi:   "कृपया ₹5,000 या अधिक की मासिक राशि बताएं।",
					models.LangTamil:   "₹5,000 அல்லது அதற்கு மேல் தொகையை சொல்லுங்கள்.",
				},
			},
			{
				ID: models.FieldMonthlyExpenses,
				Prompt: map[models.Language]string{
					models.LangEnglish: "Roughly how much do you spend per month (in ₹)?",
					models.LangHindi:   "आप महीने में लगभग कितना खर्च करते हैं (₹ में)?",
					models.LangTamil:   "மாதம் சுமார் எவ்வளவு செலவு செய்கிறீர்கள் (₹)?",
				},
				Hint: map[models.Language]string{
					models.LangEnglish: "A monthly expense figure like 30000 or 0.5 lakh works.",
					models.LangHindi:   "जैसे 30000 या 0.5 लाख — कोई मासिक खर्च बताएं।",
					models.LangTamil:   "எ.கா. 30000 போன்ற மாத செலவு தொகை.",
				},
			},
			{
				ID: models.FieldEmergencySavings,
				Prompt: map[models.Language]string{
					models.LangEnglish: "How much do you hold as emergency savings you could use tomorrow (in ₹)?",
					models.LangHindi:   "आपके पास आपातकालीन बचत कितनी है जो तुरंत काम आ सके (₹ में)?",
					models.LangTamil:   "அவசர சேமிப்பாக உடனடியாக பயன்படுத்தக்கூடிய தொகை எவ்வளவு (₹)?",
				},
				Hint: map[models.Language]string{
					models.LangEnglish: "Any amount works, including 0.",
					models.LangHindi:   "कोई भी राशि बताएं, 0 भी चलेगा।",
					models.LangTamil:   "எந்த தொகையும் சரி, 0 கூட.",
				},
			},
			{
				ID: models.FieldExistingDebtMonthly,
				Prompt: map[models.Language]string{
					models.LangEnglish: "How much goes to EMIs or debt payments each month (in ₹)?",
					models.LangHindi:   "हर महीने EMI या कर्ज़ चुकाने में कितना जाता है (₹ में)?",
					models.LangTamil:   "மாதந்தோறும் EMI / கடன் கட்டணம் எவ்வளவு (₹)?",
				},
				Hint: map[models.Language]string{
					models.LangEnglish: "A monthly figure like 12000, or 0 if you have no EMIs.",
					models.LangHindi:   "जैसे 12000, या EMI न हो तो 0।",
					models.LangTamil:   "எ.கா. 12000, EMI இல்லை என்றால் 0.",
				},
			},
			{
				ID: models.FieldCreditScore,
				Prompt: map[models.Language]string{
					models.LangEnglish: "What is your CIBIL / credit score?",
					models.LangHindi:   "आपका CIBIL / क्रेडिट स्कोर क्या है?",
					models.LangTamil:   "உங்கள் CIBIL / கடன் மதிப்பெண் என்ன?",
				},
				Hint: map[models.Language]string{
					models.LangEnglish: "A credit score is a number between 300 and 900, e.g. 720.",
					models.LangHindi:   "क्रेडिट स्कोर 300 से 900 के बीच की संख्या है।",
					models.LangTamil:   "300 முதல் 900 வரை உள்ள எண்.",
				},
			},
			{
				ID: models.FieldEmploymentStability,
				Prompt: map[models.Language]string{
					models.LangEnglish: "How stable is your income source — stable, moderate, or unstable?",
					models.LangHindi:   "आपकी आय का स्रोत कितना स्थिर है — स्थिर, मध्यम, या अस्थिर?",
					models.LangTamil:   "உங்கள் வருமான ஆதாரம் எவ்வளவு நிலையானது — நிலையான, நடுத்தர, நிலையற்ற?",
				},
				Hint: map[models.Language]string{
					models.LangEnglish: "Please pick one of: stable, moderate, unstable.",
					models.LangHindi:   "कृपया चुनें: स्थिर, मध्यम, अस्थिर।",
					models.LangTamil:   "தேர்வு செய்யுங்கள்: நிலையான, நடுத்தர, நிலையற்ற.",
				},
			},
			{
				ID: models.FieldDependents,
				Prompt: map[models.Language]string{
					models.LangEnglish: "How many people depend on your income?",
					models.LangHindi:   "आपकी आय पर कितने लोग निर्भर हैं?",
					models.LangTamil:   "உங்கள் வருமானத்தை எத்தனை பேர் நம்பியுள்ளனர்?",
				},
				Hint: map[models.Language]string{
					models.LangEnglish: "A count from 0 to 10, e.g. 0 or 3.",
					models.LangHindi:   "0 से 10 के बीच संख्या, जैसे 0 या 3।",
					models.LangTamil:   "0 முதல் 10 வரை எண்.",
				},
			},
			{
				ID: models.FieldFinancialGoal,
				Prompt: map[models.Language]string{
					models.LangEnglish: "What is your main financial goal — retirement, a home, education, a wedding, an emergency fund, or building wealth?",
					models.LangHindi:   "आपका मुख्य वित्तीय लक्ष्य क्या है — रिटायरमेंट, घर, शिक्षा, शादी, आपातकालीन फंड, या संपत्ति बनाना?",
					models.LangTamil:   "உங்கள் முக்கிய நிதி இலக்கு — ஓய்வு, வீடு, கல்வி, திருமணம், அவசர நிதி, அல்லது செல்வம்?",
				},
				Hint: map[models.Language]string{
					models.LangEnglish: "Name one: retirement, home, education, wedding, emergency fund, or wealth.",
					models.LangHindi:   "एक चुनें: रिटायरमेंट, घर, शिक्षा, शादी, आपातकालीन फंड, संपत्ति।",
					models.LangTamil:   "ஒன்றை சொல்லுங்கள்: ஓய்வு, வீடு, கல்வி, திருமணம், அவசர நிதி, செல்வம்.",
				},
			},
		},
	}
}
