package pdf

// GitaQuote is one verse translation printed at the bottom of a coupon.
type GitaQuote struct {
	Translation string
	Chapter     int
	Verse       int
}

var gitaQuotes = []GitaQuote{
	{
		Translation: "Whenever and wherever there is a decline in religious practice and a predominant rise of irreligion, at that time I descend Myself.",
		Chapter:     4, Verse: 7,
	},
	{
		Translation: "You have a right to perform your prescribed duty, but you are not entitled to the fruits of action.",
		Chapter:     2, Verse: 47,
	},
	{
		Translation: "For the soul there is neither birth nor death at any time. He has not come into being, does not come into being, and will not come into being.",
		Chapter:     2, Verse: 20,
	},
	{
		Translation: "Abandon all varieties of religion and just surrender unto Me. I shall deliver you from all sinful reactions. Do not fear.",
		Chapter:     18, Verse: 66,
	},
	{
		Translation: "If one offers Me with love and devotion a leaf, a flower, a fruit or water, I will accept it.",
		Chapter:     9, Verse: 26,
	},
	{
		Translation: "Always think of Me, become My devotee, worship Me and offer your homage unto Me. Thus you will come to Me without fail.",
		Chapter:     18, Verse: 65,
	},
	{
		Translation: "A person who is not disturbed by the incessant flow of desires can alone achieve peace, and not the man who strives to satisfy such desires.",
		Chapter:     2, Verse: 70,
	},
}
