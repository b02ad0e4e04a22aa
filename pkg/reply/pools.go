package reply

// Embedded default reply pools. Overridable through the replies section of
// the config file.
var defaultPools = map[Category][]string{
	CategoryGeneral: {
		"Hello! I'm an AI assistant powered by dummy data. How can I help you today?",
		"That's an interesting question! Based on my training, I would say that...",
		"I understand your concern. Let me think about this carefully...",
		"Here are some thoughts on that topic:\n\n1. First consideration\n2. Second point\n3. Finally...",
		"I can help you with that! Here's what I recommend based on the information provided.",
		"Thank you for your question. Here's my response based on the available information:",
		"Great question! Let me break this down for you step by step.",
		"I appreciate you sharing that with me. Here's what I think:",
		"That's a complex topic. Let me provide you with a comprehensive answer:",
		"I'd be happy to assist you with that. Here's my analysis:",
	},
	CategoryCode: {
		"Here's some example code:\n\n```python\ndef hello_world():\n    print('Hello, World!')\n    return 'Success'\n```\n\nIs this what you're looking for?",
		"Here's a code example for your request:\n\n```python\n# Your code here\ndef process_data(data):\n    result = []\n    for item in data:\n        result.append(transform(item))\n    return result\n```\n\nWould you like me to explain any part of this?",
		"Here's a sample implementation:\n\n```javascript\nfunction processItems(items) {\n    return items.map(item => {\n        return {\n            ...item,\n            processed: true\n        };\n    });\n}\n```\n\nIs this helpful?",
		"I can help with code! Here's an example:\n\n```python\nimport os\n\ndef analyze_file(filepath):\n    if os.path.exists(filepath):\n        with open(filepath, 'r') as f:\n            content = f.read()\n        return content\n    else:\n        return 'File not found'\n```\n\nLet me know if you need something specific!",
	},
	CategoryHelp: {
		"I'm here to help! I can assist with a wide variety of tasks including answering questions, writing, coding, and problem-solving. What specifically would you like help with?",
		"Of course, I'd be happy to help! I can provide assistance with:\n\n- Answering questions on various topics\n- Writing and editing text\n- Programming and debugging\n- Data analysis and explanations\n- Creative projects\n\nWhat would you like to work on?",
		"I'm ready to assist! My capabilities include:\n\n✓ Information and research\n✓ Writing and content creation\n✓ Technical support and coding\n✓ Problem-solving and analysis\n✓ Learning and explanations\n\nHow can I help you today?",
		"I'm here to support you with whatever you need! Whether it's:\n\n• Answering questions\n• Helping with projects\n• Debugging code\n• Writing assistance\n• Learning new concepts\n\nJust let me know what you'd like to work on!",
	},
	CategorySummary: {
		"Based on the text provided, here's a summary of the key points:\n\n- Main topic: The content discusses important concepts\n- Key findings: Multiple insights were presented\n- Conclusion: The information suggests several implications\n\nWould you like me to elaborate on any of these points?",
		"Here's a concise summary of the material:\n\n**Key Takeaways:**\n1. Primary theme: The main concepts covered\n2. Important details: Supporting information and examples\n3. Actionable insights: What this means for practical application\n\nLet me know if you'd like more detail on any section.",
		"Summary of the content:\n\n**Overview:** The text presents comprehensive information about the topic.\n\n**Main Points:**\n• Essential concepts and definitions\n• Supporting evidence and examples\n• Practical applications and implications\n\n**Conclusion:** The material provides valuable insights and actionable guidance.\n\nIs there a specific aspect you'd like me to expand on?",
	},
	CategoryTechnical: {
		"Here's a detailed technical analysis:\n\n1. **Problem Definition:** Understanding the core requirements\n2. **Approach:** Recommended methodology and tools\n3. **Implementation:** Step-by-step process\n4. **Considerations:** Potential challenges and solutions\n\nWould you like me to elaborate on any of these areas?",
		"From a technical perspective, I recommend the following approach:\n\n• **Analysis:** Current situation assessment\n• **Strategy:** Optimal path forward\n• **Resources:** Required tools and knowledge\n• **Timeline:** Realistic implementation schedule\n\nWhat specific aspect would you like me to focus on?",
		"Here's my professional recommendation:\n\n**Current State:** Analysis of existing conditions\n**Recommended Solution:** Evidence-based approach\n**Implementation Plan:** Practical steps and milestones\n**Success Metrics:** How to measure effectiveness\n\nLet me know if you need clarification on any point.",
	},
	CategoryGreeting: {
		"Hello there! How can I assist you today?",
		"Hi! I'm here to help with whatever you need.",
		"Greetings! What can I do for you?",
	},
	CategoryGoodbye: {
		"Goodbye! Feel free to come back if you need more help.",
		"Take care! Don't hesitate to reach out if you have more questions.",
		"See you later! I'm here whenever you need assistance.",
	},
}

// Embedded default routing keywords. Matching is substring-based on the
// lowercased user content. General has no keywords; it is the fallback.
var defaultKeywords = map[Category][]string{
	CategoryGeneral: {},
	CategoryCode: {
		"code", "programming", "function", "script", "algorithm",
		"debug", "syntax", "variable", "class", "method", "python",
		"javascript", "java", "c++", "html", "css", "sql", "api",
	},
	CategoryHelp: {
		"help", "assist", "support", "guidance", "advice", "tutorial",
		"explain", "teach", "learn", "understand", "confused",
	},
	CategorySummary: {
		"summarize", "summary", "overview", "brief", "main points",
		"key takeaways", "tldr", "extract", "highlight",
	},
	CategoryTechnical: {
		"technical", "analysis", "approach", "methodology", "strategy",
		"implementation", "architecture", "design", "best practices",
	},
	CategoryGreeting: {
		"hello", "greetings", "howdy", "good morning", "good afternoon",
		"good evening",
	},
	CategoryGoodbye: {
		"goodbye", "bye", "farewell", "see you later", "take care",
	},
}
