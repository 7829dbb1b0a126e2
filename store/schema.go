package store

// schemaSQL is the DDL for the translation cache.
const schemaSQL = `
-- Content-addressed translation cache
CREATE TABLE IF NOT EXISTS translations (
    content_hash TEXT PRIMARY KEY,
    source_lang TEXT NOT NULL DEFAULT '',
    original_prefix TEXT NOT NULL DEFAULT '',
    translated_text TEXT NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`
