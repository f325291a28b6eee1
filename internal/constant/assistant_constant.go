package constant

const (
	// Served when the classifier cannot commit to either intent. The user is
	// asked to restate rather than getting a guessed answer.
	ClarificationMessage = `I'm not sure whether you want me to search for code or explain a function. Could you rephrase? For example: "How do I read a CSV file?" or "Explain pandas.read_csv()".`

	// Served when the explanation pipeline fails after a function was
	// successfully resolved.
	ExplanationDegradedMessage = `I found the function but could not generate an explanation right now. Please try again.`

	// Served on a search turn that matched nothing.
	NoResultsMessage = `I could not find any code matching your request.`
)
