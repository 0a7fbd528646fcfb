package report

type advice struct {
	below   float64
	title   string
	text    string
	details []string
}

// bands are checked in order; the first whose bound exceeds the
// probability applies. The last band catches everything.
var bands = []advice{
	{
		below: 0.1,
		title: "STRONGLY RECOMMEND applying for this job",
		text:  "The job posting appears highly legitimate. Fraud probability is extremely low.",
		details: []string{
			"Job posting matches typical characteristics of legitimate offers",
			"Recommend verifying the company in official registries",
			"Clarify employment details during the interview",
		},
	},
	{
		below: 0.3,
		title: "CONSIDER applying for this job",
		text:  "The job looks normal, but there are minor risks to be aware of.",
		details: []string{
			"Recommend additional verification of the company",
			"Check for official contact information",
			"Never transfer money for employment opportunities",
		},
	},
	{
		below: 0.5,
		title: "PROCEED WITH CAUTION",
		text:  "There are some suspicious signs. Additional verification is required.",
		details: []string{
			"Thoroughly research the company online",
			"Look for employer reviews and ratings",
			"Do not share confidential information before interview",
		},
	},
	{
		below: 0.7,
		title: "NOT RECOMMENDED",
		text:  "High probability of fraud. Be extremely cautious.",
		details: []string{
			"Strong indicators of potential scam detected",
			"Avoid sending resume with personal information",
			"Watch for requests for upfront payments",
		},
	},
	{
		below: 2,
		title: "CRITICAL RISK - DO NOT APPLY",
		text:  "Extremely high probability of fraud. AVOID THIS POSTING!",
		details: []string{
			"Clear signs of fraudulent activity detected",
			"Do not contact the supposed employer",
			"Consider reporting this posting to the platform",
		},
	},
}

func adviceFor(p float64) advice {
	for _, b := range bands {
		if p < b.below {
			return b
		}
	}
	return bands[len(bands)-1]
}
