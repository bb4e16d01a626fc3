package constant

const (
	CropAdvicePromptTemplate = "You are an expert Indian agricultural advisor. Respond in %s. " +
		"Based on: Location: %s, Season: %s, Soil Type: %s. " +
		"Suggest top 5 crops with expected yield, cost, market price, and key tips."

	FinancialGuidancePromptTemplate = "You are a financial advisor for Indian agriculture. Respond in %s. " +
		"Topic: %s. Cover: government schemes, loan options, insurance, cost-saving tips, and revenue strategies. " +
		"Be specific with scheme names and eligibility."

	LocationSchemesPromptTemplate = "List the top 10 most popular and beneficial Indian government agricultural schemes " +
		"available for farmers in %s in 2024-2025. Respond in %s. " +
		"For each scheme provide: 1) Scheme Name, 2) Brief description, 3) Key benefits, 4) How to apply. " +
		"Focus on schemes most relevant to that region."

	SoilAnalysisPrompt = "Analyze this soil image. Identify the soil type (clay, sandy, loamy, etc.) and suggest " +
		"3-5 suitable crops for this soil type in India. Also mention any soil health observations. " +
		"Format with clear headings."

	PlantAnalysisPrompt = "Look at this plant image carefully. Identify if the plant has any disease, pest damage, " +
		"or nutrient deficiency. If healthy, say so. If there is an issue, provide: 1) Disease/problem name, " +
		"2) Cause, 3) Recommended treatment. Be practical for Indian farmers."
)

const (
	DefaultAdviceLocation  = "Central India"
	DefaultAdviceSeason    = "Kharif"
	DefaultAdviceSoilType  = "Not specified"
	DefaultFinancialTopic  = "general financial planning"
	DefaultSchemesLocation = "India"
)

const (
	FallbackGenerated = "Could not generate."
	FallbackAnalysis  = "Could not analyze."
	FallbackSchemes   = "Could not get schemes."
)

const (
	AdvisoryTemperature     = 0.7
	VisionTemperature       = 0.5
	AdviceMaxTokens         = 1500
	LocationSchemeMaxTokens = 2000
	VisionMaxTokens         = 1024
)
