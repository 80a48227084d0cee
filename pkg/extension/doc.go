// Package extension implements the launcher query handler: it turns host
// preferences and a typed prompt into result items by calling the Grok chat
// completions API once.
//
// Every failure is converted into exactly one item. Failures are classified
// as [ConfigurationError], [RequestError], [ResponseError] or
// [ProcessingError]; [ErrorItem] renders any of them.
package extension
