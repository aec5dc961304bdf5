package constant

// SeedDocument is one entry of the built-in knowledge corpus loaded at
// startup. The index starts empty on every boot and is re-fed from this set.
type SeedDocument struct {
	Title    string
	Category string
	Source   string
	Content  string
	Tags     []string
}

// Knowledge categories used across the corpus and the search API.
const (
	CategoryCompany   = "company"
	CategoryFunding   = "funding"
	CategoryProduct   = "product"
	CategorySupport   = "support"
	CategoryContact   = "contact"
	CategoryPortfolio = "portfolio"
)

var SeedCorpus = []SeedDocument{
	{
		Title:    "About Meta3 Ventures",
		Category: CategoryCompany,
		Source:   "website",
		Content:  "Meta3 Ventures is an early-stage venture capital firm investing in AI, Web3 and frontier technology companies. The firm partners with founders from pre-seed through Series A, providing capital, hands-on product guidance and access to a global network of operators and follow-on investors.",
		Tags:     []string{"about", "thesis"},
	},
	{
		Title:    "Investment thesis",
		Category: CategoryCompany,
		Source:   "website",
		Content:  "Meta3 Ventures backs technical founding teams building infrastructure and applications at the intersection of artificial intelligence and decentralized systems. Focus areas include AI agents and tooling, data infrastructure, developer platforms, digital assets and the automation of knowledge work.",
		Tags:     []string{"thesis", "ai", "web3"},
	},
	{
		Title:    "Funding criteria",
		Category: CategoryFunding,
		Source:   "website",
		Content:  "Meta3 Ventures invests in pre-seed and seed rounds with initial checks between 100k and 1M USD, reserving capital for follow-on. The firm looks for a technical founding team, a working prototype or early product, and a credible path to a large market. Warm introductions help but are not required; cold applications through the website are reviewed weekly.",
		Tags:     []string{"criteria", "check size", "seed"},
	},
	{
		Title:    "Funding process",
		Category: CategoryFunding,
		Source:   "website",
		Content:  "The funding process starts with a deck submission through the website contact form. Promising teams get a first call within two weeks, followed by a deeper product and market session. Decisions typically take four to six weeks from first contact. Founders hear back either way.",
		Tags:     []string{"process", "timeline"},
	},
	{
		Title:    "What we offer founders",
		Category: CategoryProduct,
		Source:   "website",
		Content:  "Beyond capital, Meta3 Ventures offers portfolio founders weekly office hours, go-to-market support, introductions to design partners and later-stage investors, and shared engineering resources for AI infrastructure. Portfolio companies also get access to the firm's research on agent architectures and token design.",
		Tags:     []string{"value add", "services"},
	},
	{
		Title:    "AI agent platform research",
		Category: CategoryProduct,
		Source:   "research",
		Content:  "Meta3 Ventures publishes open research on production AI agent systems: provider fallback strategies, retrieval grounding, evaluation harnesses and cost control. The research program informs both investment decisions and the technical support offered to portfolio companies.",
		Tags:     []string{"research", "agents"},
	},
	{
		Title:    "Portfolio overview",
		Category: CategoryPortfolio,
		Source:   "website",
		Content:  "The Meta3 Ventures portfolio spans AI infrastructure, developer tooling, decentralized finance and applied machine learning companies across the US, Europe and Israel. Representative areas include agent orchestration platforms, vector data systems, on-chain analytics and workflow automation.",
		Tags:     []string{"portfolio", "companies"},
	},
	{
		Title:    "Scheduling a meeting",
		Category: CategorySupport,
		Source:   "website",
		Content:  "Founders can schedule an introductory meeting with the Meta3 Ventures team directly through the website assistant by leaving a name, an email address and a short topic. The team confirms a slot by email, usually within two business days.",
		Tags:     []string{"meeting", "scheduling"},
	},
	{
		Title:    "Application support",
		Category: CategorySupport,
		Source:   "website",
		Content:  "If a deck submission fails or no confirmation email arrives, visitors should retry the contact form or email the team address directly. Applications are never silently dropped; every submission receives an automated acknowledgment.",
		Tags:     []string{"troubleshooting", "application"},
	},
	{
		Title:    "Contact information",
		Category: CategoryContact,
		Source:   "website",
		Content:  "Meta3 Ventures can be reached through the website contact form or by email at hello@meta3ventures.com. The firm operates from Tel Aviv with partners in New York and London. For press inquiries use the same address with a press subject line.",
		Tags:     []string{"contact", "email", "locations"},
	},
}
