package engine

// Generation prompt templates — data only, no logic.

// fictionalLinkPrefix is the URL convention the model is told to follow;
// generated lines are illustrative only and never resolvable.
const fictionalLinkPrefix = "https://fictional-stream-link.com/"

// linkPromptBase builds the fictional-link request.
// Args: quality instruction, video title, video id.
const linkPromptBase = `Generate a list of fictional download stream links for the following YouTube video.
%s
The links should be illustrative and not real. Start each link with "` + fictionalLinkPrefix + `".

Video Title: %s
Video ID: %s`

// qualityGeneric asks for a spread of high resolutions.
const qualityGeneric = `Provide 5-6 options with different high resolutions (e.g., 8K, 4K, 1440p, 1080p, 720p) and formats (e.g., MP4, WebM).`

// qualityPreferred biases toward one bucket while keeping alternatives.
// Args: preferred quality label.
const qualityPreferred = `Prioritize generating a fictional download link for %s resolution. Also include a few other high-resolution options like 8K, 4K, 1440p, and 1080p.`
