package model

// SampleCV returns the seed record a new editing session starts from.
// Entry ids are generated on every call.
func SampleCV() CV {
	return CV{
		PersonalDetails: PersonalDetails{
			FullName:       "Samantha Williams",
			JobTitle:       "Senior Analyst",
			Email:          "samantha.williams@example.com",
			Phone:          "(555) 789-1234",
			Address:        "New York, NY, 10001",
			LinkedIn:       "linkedin.com/in/samanthawilliams",
			ProfilePicture: "https://images.pexels.com/photos/774909/pexels-photo-774909.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=1",
		},
		Summary: "Senior Analyst with 5+ years of experience in data analysis, business intelligence, and process optimization. Skilled in driving operational efficiency, forecasting, and building data-driven strategies to support business decisions and improvements. Strong communicator focused on results.",
		Experience: []Experience{
			{
				ID:        NewID(),
				JobTitle:  "Senior Analyst",
				Company:   "Loom & Lantern Co.",
				StartDate: "2021-07",
				EndDate:   "Present",
				Description: "• Spearhead data analysis and reporting for key business functions, identifying trends and providing insights to improve profitability.\n" +
					"• Conduct in-depth market analysis and competitive benchmarking to inform strategic decisions, resulting in a 15% increase in market share within one year.\n" +
					"• Develop predictive models to forecast sales performance and customer behavior, contributing to more accurate budgeting and resource allocation.",
			},
			{
				ID:        NewID(),
				JobTitle:  "Business Analyst",
				Company:   "Willow & Wren Ltd.",
				StartDate: "2017-08",
				EndDate:   "2021-05",
				Description: "• Analyzed and interpreted large datasets to identify business opportunities and recommend process improvements, leading to a 20% reduction in operational costs.\n" +
					"• Created detailed financial models and dashboards to track key performance indicators (KPIs), enabling data-driven decision-making across departments.",
			},
		},
		Education: []Education{
			{
				ID:        NewID(),
				Degree:    "Bachelor of Science in Economics",
				School:    "New York University",
				StartDate: "2013-09",
				EndDate:   "2017-05",
			},
		},
		Skills: "Project Management, Data-driven Decision Making, SQL & Excel, Financial Analysis, Business Intelligence tools, Statistical Modeling",
	}
}
