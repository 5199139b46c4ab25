package vision

// DescribePrompt instructs the model to return a bare JSON array describing
// every NMR graph on the page. Models still wrap it in markdown fences from
// time to time, so the parser tolerates fences anyway.
const DescribePrompt = `The image is a page with one or two NMR graphs (free induction decay, FID).
The interface may contain: a header with the sample, crystallinity index and
proton density; the graphs themselves with axes (time in microseconds,
intensity in % and similar); a caption under the illustration (number, object,
item type, punch).

Extract all data you can see on the page and return strictly one JSON array,
with no markdown wrapper and no explanations before or after. Each array
element is one graph on the page (graph_id: 1, 2, ...).

Format of each element:

{
  "graph_id": <graph number on the page, 1 or 2>,
  "header_data": {
    "full_text": "<full header text above the graph, if any>",
    "structured_metrics": {
      "sample_reference": "<sample reference, e.g. 'Sample No. 3 to Report No. 11366'>",
      "crystallinity_index": <number: crystallinity index K, if visible>,
      "proton_density": <number: proton density Pr, if visible>
    }
  },
  "graph_statistics": {
    "axes": {
      "y_axis": {
        "label": "<Y axis label, e.g. 'Intensity, %'>",
        "visible_min": <number at the start of the Y scale>,
        "visible_max": <number at the end of the Y scale>,
        "step_interval": <number: grid step if tick labels are visible, else null>
      },
      "x_axis": {
        "label": "<X axis label, e.g. 'Time, us'>",
        "visible_min": <number at the start of the X scale>,
        "visible_max": <number at the end of the X scale>,
        "step_interval": <number: grid step if tick labels are visible, else null>
      }
    },
    "y_metrics_max": {
      "red": <number: maximum Y value of the red curve; null if absent or unreadable>,
      "blue": <number: maximum Y value of the blue curve; null if absent>,
      "green": <number: maximum Y value of the green curve; null if absent>
    },
    "visible_tabs": ["<tab name if visible>", ...]
  },
  "caption_data": {
    "illustration_number": "<illustration number, e.g. 'No. 155'>",
    "full_text": "<full caption text under the illustration>",
    "structured_details": {
      "object_type": "<type, e.g. 'NMR section of the examined strokes'>",
      "source_item": "<source, e.g. 'impression of the round stamp of PJSC ...'>",
      "investigation_object": "<object, e.g. 'Object No. 12'>",
      "condition": "<condition, e.g. 'at the third punch'>"
    }
  }
}

Rules:
- Always read the numbers off the axis ticks of every graph: visible_min and
  visible_max are the numbers labeled at the start and end of the axis;
  step_interval is the grid step when tick labels are visible. Use null only
  if the scale really is unreadable.
- A graph has three metrics (curves): red, blue and green. In y_metrics_max
  give the maximum Y value of each curve (peak or upper bound on the Y scale);
  null if the curve is absent or the value cannot be determined.
- If a block or field is not on the image, use the empty string "" or null
  for numbers.
- crystallinity_index and proton_density are numbers only (float).
- visible_tabs is an array of strings with interface tab names if visible,
  otherwise [].
- The answer must be valid JSON only, starting with [ and ending with ].`
