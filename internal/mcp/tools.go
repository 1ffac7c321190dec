package mcp

import "github.com/mark3labs/mcp-go/mcp"

var analyzeToolDef = mcp.NewTool("string_analyze",
	mcp.WithDescription("Compute the properties of a string without storing it: length, palindrome status, unique characters, word count, SHA-256 hash and character frequencies."),
	mcp.WithString("value",
		mcp.Required(),
		mcp.Description("The string to analyze"),
	),
)

var createToolDef = mcp.NewTool("string_create",
	mcp.WithDescription("Analyze a string and store it. The entry id is the SHA-256 of the exact value; storing the same value twice fails with DUPLICATE_ENTRY."),
	mcp.WithString("value",
		mcp.Required(),
		mcp.Description("The string to store, kept exactly as given"),
	),
)

var fetchToolDef = mcp.NewTool("string_fetch",
	mcp.WithDescription("Fetch a stored string and its properties by exact value."),
	mcp.WithString("value",
		mcp.Required(),
		mcp.Description("The stored string (case and whitespace sensitive)"),
	),
)

var deleteToolDef = mcp.NewTool("string_delete",
	mcp.WithDescription("Permanently delete a stored string by exact value."),
	mcp.WithString("value",
		mcp.Required(),
		mcp.Description("The stored string to delete"),
	),
)

var filterToolDef = mcp.NewTool("string_filter",
	mcp.WithDescription("List stored strings matching every given property filter, in insertion order. With no filters, lists everything."),
	mcp.WithBoolean("is_palindrome",
		mcp.Description("Match palindromes (true) or non-palindromes (false); case and whitespace are ignored"),
	),
	mcp.WithNumber("min_length",
		mcp.Description("Minimum length in characters, inclusive"),
	),
	mcp.WithNumber("max_length",
		mcp.Description("Maximum length in characters, inclusive"),
	),
	mcp.WithNumber("word_count",
		mcp.Description("Exact number of whitespace-separated words"),
	),
	mcp.WithString("contains_character",
		mcp.Description("A single character the string must contain (case sensitive)"),
	),
)

var queryToolDef = mcp.NewTool("string_query",
	mcp.WithDescription(`List stored strings matching a natural language query such as "single word palindromes", "strings longer than 10 characters" or "strings containing the letter z". Returns the interpreted filters alongside the matches.`),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Free-text query"),
	),
)
