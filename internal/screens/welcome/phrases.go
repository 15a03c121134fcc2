package welcome

import "math/rand/v2"

var motivationalPhrases = []string{
	"Practice makes perfect. - Benjamin Franklin",
	"Practice puts brains in your muscles. - Sam Snead",
	"Everything is practice. - Pele",
	"Champions keep playing until they get it right. - Billie Jean King",
	"An ounce of practice is worth more than tons of preaching. - Mahatma Gandhi",
	"Knowledge is of no value unless you put it into practice. - Anton Chekhov",
	"The only way to learn mathematics is to do mathematics. - Paul Halmos",
	"Success is the sum of small efforts, repeated day in and day out. - Robert Collier",
	"Don't practice until you get it right. Practice until you can't get it wrong.",
	"The journey of a thousand miles begins with a single step. - Lao Tzu",
	"Believe you can and you're halfway there. - Theodore Roosevelt",
	"It does not matter how slowly you go as long as you do not stop. - Confucius",
	"The expert in anything was once a beginner.",
	"Mistakes are proof that you are trying.",
	"Every problem is a chance for you to do your best.",
	"Persistence guarantees that results are inevitable. - Paramahansa Yogananda",
	"You don't have to be great to start, but you have to start to be great. - Zig Ziglar",
	"The best way to predict the future is to create it. - Peter Drucker",
}

func randomPhrase() string {
	return motivationalPhrases[rand.IntN(len(motivationalPhrases))]
}
