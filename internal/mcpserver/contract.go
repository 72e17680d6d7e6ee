package mcpserver

// DocumentFormatContract describes the canonical record document layout
// that LLM consumers should follow when reading or hand-editing the data
// directory.
const DocumentFormatContract = `# Mannaz Record Document Contract

Every record Mannaz stores is a plain Markdown file under the data root.
Files edited by hand MUST keep this structure or they will be skipped on
read.

## Layout

- ` + "`" + `staff/<name-slug>.md` + "`" + ` — one profile document per staff member
- ` + "`" + `reminders.md` + "`" + ` — the shared reminders log
- ` + "`" + `transcripts/YYYY-MM-DD-<title-slug>.md` + "`" + ` — processed call transcripts

Slugs are lowercase display names with whitespace collapsed to hyphens
and punctuation dropped (` + "`" + `Jane Doe` + "`" + ` becomes ` + "`" + `jane-doe` + "`" + `).

## Staff Profiles

` + "```" + `markdown
---
id: 7c0f4e1a-...                    # REQUIRED - the stable lookup key
name: Jane Doe                      # REQUIRED - display name, drives the file name
email: jane@example.com
role: Senior Engineer
department: Platform
manager: Alex Kim
created_at: 2025-03-10 14:02        # REQUIRED
updated_at: 2025-06-01 09:15        # REQUIRED
---

# Jane Doe

## Overview
- **Role:** Senior Engineer
- **Department:** Platform
- **Email:** jane@example.com
- **Manager:** Alex Kim

## Skills
- No skills listed yet

## Current Goals
- Ship the onboarding revamp

## Notes
- Pairing went well this sprint *(performance, from one_on_one, 2025-06-01 09:15)*

## Achievements
- No achievements recorded yet

## Concerns
- No concerns noted

---
*Last updated: 2025-06-01 09:15*
` + "```" + `

Optional header dates: ` + "`" + `hire_date` + "`" + `, ` + "`" + `last_one_on_one` + "`" + `, ` + "`" + `next_review` + "`" + `.

## Reminders Log

The log is a single document with a pending and a completed section.
New entries are inserted at the top of the pending section; completing
an entry moves its whole block into the completed section.

` + "```" + `markdown
# Team Management Reminders

## Pending Tasks

- 🟡 **Prepare quarterly review** (Due: 2025-07-01)
  - Collect peer feedback first
  - Related to: Jane Doe
  - ID: ` + "`" + `b31c...` + "`" + `

## Completed Tasks

- ✅ **Book offsite venue** (Completed: 2025-05-20)
  - ID: ` + "`" + `a90d...` + "`" + `
` + "```" + `

Priority icons: 🟢 low, 🟡 medium, 🔴 high, 🚨 urgent.

## Transcripts

Transcript documents are written by the server when a call is processed
and are treated as an archive: a header identifying the call, the raw
conversation under ` + "`" + `## Transcript Content` + "`" + `, and the extracted action
items, concerns and decisions under ` + "`" + `## Extracted Items` + "`" + `.

## Rules

1. **The YAML header is mandatory.** The ` + "`" + `---` + "`" + ` fences must be the first
   thing in the file (no leading blank lines). Keys map to flat string
   values; empty values are omitted entirely.
2. **Timestamps** use ` + "`" + `YYYY-MM-DD HH:MM` + "`" + `; bare dates use ` + "`" + `YYYY-MM-DD` + "`" + `.
3. **List items** are ` + "`" + `- ` + "`" + ` bullets directly under their section heading.
   A bullet starting with ` + "`" + `No ` + "`" + ` is a placeholder, not data.
4. **Annotations** trail a list item as ` + "`" + ` *(category, from source, timestamp)*` + "`" + `;
   category and source are optional, the timestamp is not.
5. **Reminder blocks** keep their ` + "`" + `ID:` + "`" + ` line intact. The fenced id is the
   entry's only stable key; an entry without one cannot be completed.
6. **Encoding** is UTF-8 with a trailing newline.
`
