package resolver

import "fmt"

// The system message pins the persona; keeping it stable is part of what
// makes repeated runs reproducible at low temperature.
const systemPrompt = "You are an expert API documentation specialist with deep knowledge of real API endpoints " +
	"from major platforms. You know the exact endpoints, methods, and base URLs for services like " +
	"Slack, GitHub, Discord, Twitter, Shopify, etc. Always provide REAL, documented endpoints that " +
	"actually exist in their official APIs."

func userPrompt(app string) string {
	return fmt.Sprintf(`I need the ACTUAL, REAL API endpoints for %[1]s's official API. Please provide the exact endpoints that exist in their current API documentation.

Generate a JSON configuration with this structure:
{
    "provider": "Exact Official Name",
    "base_url": "Real base URL from official docs (default https://api.%[1]s.com if unsure)",
    "endpoints": [
        {"name": "real_endpoint_name", "method": "ACTUAL_METHOD", "path": "/real/api/path", "description": "What this real endpoint actually does"},
        ...
    ]
}

CRITICAL REQUIREMENTS:
1. Use ONLY real, documented endpoints from %[1]s's official API
2. Use the exact base URL from their official documentation
3. Use real endpoint paths that actually exist
4. Include 15-20 of their most important/commonly used endpoints
5. Use correct HTTP methods (GET, POST, PUT, DELETE, PATCH)
6. For well-known APIs like Slack, GitHub, Discord, Twitter, etc. - use their EXACT documented endpoints

Do NOT make up generic REST endpoints. Use the ACTUAL endpoints from %[1]s's real API documentation.

Return ONLY the JSON, no explanations:`, app)
}
