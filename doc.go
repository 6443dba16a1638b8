// Package md2kdp compiles markdown manuscripts into print-ready books for
// Kindle Direct Publishing.
//
// # Quick Start
//
//	conv, err := md2kdp.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, md2kdp.Input{
//	    Markdown: "---\ntitle: My Book\n---\n# Part One\n\n## Chapter\n\nText.",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("book.docx", result.DOCX, 0644)
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Line ending normalization and front matter extraction
//  2. Block parsing (parts, chapters, headings, paragraphs, quotes, code, lists, scene breaks)
//  3. Layout: title page, copyright page, table of contents and body, with
//     inline emphasis, code spans and links resolved per paragraph
//  4. WordprocessingML (.docx) rendering
//
// Compile runs stages 1 and 2 alone and never fails.
//
// # Manuscript Syntax
//
//	# Part title           ## Chapter title
//	### Section heading    #### Subsection heading
//	> quoted line          ``` fenced code ```
//	- bullet item          1. numbered item
//	---, ___, ***, * * *   scene break
//	**bold** *italic* `code` [text](https://url)
//
// Parts and chapters appear in the table of contents and start on a new
// page, except when one opens the book.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := md2kdp.NewConverter(
//	    md2kdp.WithTheme(theme),
//	    md2kdp.WithLogger(logger),
//	    md2kdp.WithFixZip(true),
//	)
//
// # Error Handling
//
// Rendering failures wrap ErrRender; invalid themes return ErrInvalidTheme.
// Titles that share an anchor are not errors: they are reported in
// ConvertResult.Collisions and only the first one is bookmarked.
package md2kdp
