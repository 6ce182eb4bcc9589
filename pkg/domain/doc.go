/*
Package domain contains the core data model for the Canvass survey engine.

It defines the survey definition (Survey, Step, Question), the visibility
rules attached to questions (ConditionGroup, ConditionRule), and the
recorded answers (Response, ResponseSet). This package is kept pure and
free of I/O or persistence concerns, following Hexagonal Architecture
principles.

# Key Entities

  - Survey: The immutable definition of a multi-step survey.
  - Question: A single prompt with a type, required flag, and optional
    visibility conditions referencing other questions' answers.
  - Response: The recorded answer (plus optional comment and timestamp)
    for one question.
  - Submission: The final payload assembled from all responses.
*/
package domain
