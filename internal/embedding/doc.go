// Package embedding provides pluggable text embedding backends.
//
// A Backend turns a text into one L2-normalized vector of a fixed
// dimension. Backends are described by a Descriptor and registered in
// a Registry under a canonical name and optional aliases. A Pool
// shares loaded backends across requests so that each (backend, model)
// pair is initialized exactly once per process.
//
// Built-in backends:
//   - small-local (alias miniLM): hashed word n-gram embedder, 384 dims
//   - large-local (alias bge-m3): hashed character n-gram embedder, 1024 dims
//   - remote-api (alias openai-te3): OpenAI-compatible /embeddings client
package embedding
