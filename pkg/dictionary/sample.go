package dictionary

// Sample returns a small built in dictionary, used when no file or download is available.
func Sample() []Entry {
	return []Entry{
		{Word: "algorithm", Frequency: 100},
		{Word: "algorithms", Frequency: 85},
		{Word: "algebra", Frequency: 70},
		{Word: "api", Frequency: 88},
		{Word: "application", Frequency: 80},
		{Word: "array", Frequency: 90},
		{Word: "binary", Frequency: 75},
		{Word: "boolean", Frequency: 60},
		{Word: "buffer", Frequency: 55},
		{Word: "cache", Frequency: 82},
		{Word: "class", Frequency: 78},
		{Word: "code", Frequency: 98},
		{Word: "compiler", Frequency: 65},
		{Word: "computer", Frequency: 92},
		{Word: "concurrency", Frequency: 58},
		{Word: "data", Frequency: 95},
		{Word: "database", Frequency: 90},
		{Word: "debug", Frequency: 72},
		{Word: "function", Frequency: 93},
		{Word: "graph", Frequency: 68},
		{Word: "hash", Frequency: 74},
		{Word: "heap", Frequency: 62},
		{Word: "interface", Frequency: 77},
		{Word: "java", Frequency: 90},
		{Word: "javascript", Frequency: 88},
		{Word: "language", Frequency: 81},
		{Word: "library", Frequency: 79},
		{Word: "memory", Frequency: 76},
		{Word: "network", Frequency: 73},
		{Word: "program", Frequency: 94},
		{Word: "programming", Frequency: 91},
		{Word: "python", Frequency: 95},
		{Word: "query", Frequency: 67},
		{Word: "queue", Frequency: 63},
		{Word: "recursion", Frequency: 57},
		{Word: "server", Frequency: 84},
		{Word: "software", Frequency: 89},
		{Word: "stack", Frequency: 71},
		{Word: "string", Frequency: 87},
		{Word: "structure", Frequency: 69},
		{Word: "system", Frequency: 86},
		{Word: "thread", Frequency: 64},
		{Word: "tree", Frequency: 80},
		{Word: "trie", Frequency: 50},
		{Word: "variable", Frequency: 83},
		{Word: "web", Frequency: 85},
	}
}
