package orchestratornode

// Fixed replies shown to the farmer. They are persisted like any other reply.
const (
	FarmerNotFoundReply     = "Could not find farmer profile."
	WeatherUnavailableReply = "Sorry, I am unable to get the weather forecast right now."
	YieldPlaceholderReply   = "Yield prediction is not yet implemented."
	AdviceUnavailableReply  = "I'm sorry, I'm having a little trouble thinking right now. Please try again in a moment."
)
