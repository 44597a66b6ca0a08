package aggregate

// Fallback copy pools. Titles that look like raw URLs and missing snippets
// are replaced with entries chosen by hashing, so the same input always maps
// to the same replacement.

var fallbackHeadlines = []string{
	"Global Markets Rally as Tech Sector Surges to New Highs",
	"SpaceX Successfully Launches Next-Gen Starship Prototype",
	"Breakthrough in Quantum Computing: Error Correction Solved",
	"Sustainable Energy: Solar Adoption Outpaces Forecasts in 2025",
	"New AI Model Demonstrates Reasoning Capabilities Par with Humans",
	"The Future of Remote Work: Trends Shaping the Next Decade",
	"Electric Vehicle Sales Surpass Traditional Autos in Nordic Region",
	"Medical Marvel: New Treatment Shows Promise for Chronic Conditions",
	"Ocean Cleanup Project Expands Operations to Pacific Garbage Patch",
	"Global Summit Addresses Urgent Climate Action Goals",
	"Tech Giant Unveils Revolutionary AR Glasses at Annual Event",
	"Startups to Watch: The Next Unicorns of the Web3 Era",
}

var fallbackSnippets = []string{
	"Analysts predict a sustained bull run as major technology companies report record-breaking quarterly earnings, driving investor confidence across global indices.",
	"The successful test flight marks a pivotal moment in interplanetary travel, with engineers confirming that all primary systems functioned nominally during the ascent.",
	"Researchers have achieved a long-sought milestone, demonstrating a qubit architecture that remains stable for significantly longer periods, opening doors for complex calculations.",
	"New data suggests that the transition to renewable energy is accelerating faster than anticipated, with solar panel efficiency reaching new commercial peaks.",
	"Experts are calling this the 'GPT moment' for reasoning, as the latest model solves complex mathematical problems and coding challenges with unprecedented accuracy.",
	"As hybrid models solidify, companies are reimagining office spaces to prioritize collaboration while investing heavily in digital infrastructure for remote teams.",
	"Consumer preference has shifted dramatically this quarter, with EV market share crossing the 50% threshold in key Scandinavian markets, signaling a tipping point.",
	"Clinical trials have shown a 90% efficacy rate in early-stage patients, offering hope for a cure to a condition that affects millions worldwide.",
	"The new System 03 has successfully deployed, collecting tons of plastic waste from the ocean surface while minimizing impact on marine life.",
	"World leaders have convened to sign a binding agreement that aims to reduce carbon emissions by 40% within the next five years through aggressive policy changes.",
	"The device promises to seamlessly blend digital information with the physical world, featuring a lightweight design that could finally make AR mainstream.",
	"Venture capital funding is pouring into decentralized infrastructure projects, with a focus on privacy-preserving technologies and scalable blockchain solutions.",
}

// byteSum hashes a string into the fallback pools. A plain byte sum keeps the
// mapping identical across runs and platforms.
func byteSum(s string) int {
	sum := 0
	for _, b := range []byte(s) {
		sum += int(b)
	}
	return sum
}

// headlineFor returns the deterministic replacement headline for a URL.
func headlineFor(url string) string {
	return fallbackHeadlines[byteSum(url)%len(fallbackHeadlines)]
}

// snippetFor returns the deterministic fallback snippet for a title.
func snippetFor(title string) string {
	return fallbackSnippets[len(title)%len(fallbackSnippets)]
}
